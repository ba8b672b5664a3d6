package mirror

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/VelvetStudioBR/studio-booking/internal/cache"
	"github.com/VelvetStudioBR/studio-booking/internal/calendar"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
)

// SyncResult summarizes one reconciliation pass.
type SyncResult struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	EventsFound  int       `json:"events_found"`
	DatesUpdated int       `json:"dates_updated"`
	SyncedAt     time.Time `json:"synced_at"`
}

// Syncer reconciles the mirror against the external calendar feed for a
// rolling window (current month plus the next). External events contribute
// taken slots but never override a locally stored booking's status.
type Syncer struct {
	events calendar.Client
	repo   BookingSource
	store  Store
	log    *zap.Logger
	loc    *time.Location
}

func NewSyncer(
	events calendar.Client,
	repo BookingSource,
	store Store,
	log *zap.Logger,
	loc *time.Location,
) *Syncer {
	return &Syncer{
		events: events,
		repo:   repo,
		store:  store,
		log:    log,
		loc:    loc,
	}
}

// SyncWindow runs one reconciliation over the rolling window. Each
// invocation rebuilds affected dates from scratch, so repeat runs are
// idempotent.
func (s *Syncer) SyncWindow(ctx context.Context) (*SyncResult, error) {
	now := time.Now().In(s.loc)

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 2, -1) // last day of next month

	fromStr := from.Format("2006-01-02")
	toStr := to.Format("2006-01-02")

	events, err := s.events.ListEvents(ctx, fromStr, toStr)
	if err != nil {
		return nil, err
	}

	// taken labels per date, locals first
	byDate := make(map[string]map[string]bool)
	add := func(date, label string) {
		if byDate[date] == nil {
			byDate[date] = make(map[string]bool)
		}
		byDate[date][domain.Canonical(label)] = true
	}

	bookings, err := s.repo.ListActiveByDateRange(ctx, fromStr, toStr)
	if err != nil {
		return nil, err
	}
	for _, bk := range bookings {
		if _, perr := domain.ParseDate(bk.Date, s.loc); perr != nil {
			s.log.Warn("skipping booking row with bad date",
				zap.Uint("booking_id", bk.ID),
				zap.String("date", bk.Date),
			)
			continue
		}
		add(bk.Date, bk.Time)
	}

	for _, ev := range events {
		if _, perr := domain.ParseDate(ev.Date, s.loc); perr != nil {
			s.log.Warn("skipping external event with bad date",
				zap.String("uid", ev.UID),
				zap.String("date", ev.Date),
			)
			continue
		}
		// the feed is queried with the window bounds but is not trusted to
		// honor them
		if ev.Date < fromStr || ev.Date > toStr {
			s.log.Warn("skipping external event outside sync window",
				zap.String("uid", ev.UID),
				zap.String("date", ev.Date),
			)
			continue
		}
		add(ev.Date, ev.Time)
	}

	updated := 0
	for date, labels := range byDate {
		flat := make([]string, 0, len(labels))
		for l := range labels {
			flat = append(flat, l)
		}

		entry := &cache.MirrorEntry{
			TakenTimes: orderedTaken(date, flat, s.loc),
			UpdatedAt:  time.Now().In(s.loc),
		}

		if err := s.store.Set(ctx, date, entry); err != nil {
			s.log.Warn("mirror sync: failed to publish date",
				zap.String("date", date),
				zap.Error(err),
			)
			continue
		}
		updated++
	}

	res := &SyncResult{
		From:         fromStr,
		To:           toStr,
		EventsFound:  len(events),
		DatesUpdated: updated,
		SyncedAt:     time.Now().In(s.loc),
	}

	s.log.Info("calendar sync finished",
		zap.String("from", res.From),
		zap.String("to", res.To),
		zap.Int("events", res.EventsFound),
		zap.Int("dates_updated", res.DatesUpdated),
	)

	return res, nil
}

// Run executes SyncWindow on a fixed interval until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SyncWindow(ctx); err != nil {
				s.log.Warn("scheduled calendar sync failed", zap.Error(err))
			}
		}
	}
}
