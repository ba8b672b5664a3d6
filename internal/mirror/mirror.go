package mirror

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/VelvetStudioBR/studio-booking/internal/cache"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

// BookingSource is the slice of the repository the mirror needs.
type BookingSource interface {
	ListActiveByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListActiveByDateRange(ctx context.Context, from, to string) ([]models.Booking, error)
}

// Store is the published side of the mirror.
type Store interface {
	Get(ctx context.Context, date string) (*cache.MirrorEntry, error)
	Set(ctx context.Context, date string, entry *cache.MirrorEntry) error
}

// Recomputer rebuilds the per-date availability summary from the
// authoritative booking rows. It is a best-effort projection: failures are
// logged and the next trigger retries.
type Recomputer struct {
	repo  BookingSource
	store Store
	log   *zap.Logger
	loc   *time.Location
}

func NewRecomputer(repo BookingSource, store Store, log *zap.Logger, loc *time.Location) *Recomputer {
	return &Recomputer{repo: repo, store: store, log: log, loc: loc}
}

func (r *Recomputer) Recompute(ctx context.Context, date string) error {
	bookings, err := r.repo.ListActiveByDate(ctx, date)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(bookings))
	for _, bk := range bookings {
		labels = append(labels, bk.Time)
	}

	entry := &cache.MirrorEntry{
		TakenTimes: orderedTaken(date, labels, r.loc),
		UpdatedAt:  time.Now().In(r.loc),
	}

	return r.store.Set(ctx, date, entry)
}

// orderedTaken deduplicates labels into canonical form, ordered by the
// date's slot table; labels outside the table (legacy data, external
// events) follow in clock order.
func orderedTaken(date string, labels []string, loc *time.Location) []string {
	taken := make(map[string]bool, len(labels))
	for _, l := range labels {
		taken[domain.Canonical(l)] = true
	}

	out := make([]string, 0, len(taken))

	if day, err := domain.ParseDate(date, loc); err == nil {
		for _, slot := range domain.SlotsFor(day) {
			if taken[slot] {
				out = append(out, slot)
				delete(taken, slot)
			}
		}
	}

	extras := make([]string, 0, len(taken))
	for l := range taken {
		extras = append(extras, l)
	}
	sort.Slice(extras, func(i, j int) bool {
		hi, _ := domain.Hour24(extras[i])
		hj, _ := domain.Hour24(extras[j])
		return hi < hj
	})

	return append(out, extras...)
}
