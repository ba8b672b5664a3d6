package mirror

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/VelvetStudioBR/studio-booking/internal/cache"
	"github.com/VelvetStudioBR/studio-booking/internal/calendar"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

type fakeSource struct {
	byDate map[string][]models.Booking
}

func (s *fakeSource) ListActiveByDate(_ context.Context, date string) ([]models.Booking, error) {
	return s.byDate[date], nil
}

func (s *fakeSource) ListActiveByDateRange(_ context.Context, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for date, bookings := range s.byDate {
		if date >= from && date <= to {
			out = append(out, bookings...)
		}
	}
	return out, nil
}

type fakeStore struct {
	entries map[string]*cache.MirrorEntry
	failSet bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]*cache.MirrorEntry{}}
}

func (s *fakeStore) Get(_ context.Context, date string) (*cache.MirrorEntry, error) {
	return s.entries[date], nil
}

func (s *fakeStore) Set(_ context.Context, date string, entry *cache.MirrorEntry) error {
	if s.failSet {
		return errors.New("store down")
	}
	s.entries[date] = entry
	return nil
}

type fakeFeed struct {
	events []calendar.Event
	err    error
}

func (f *fakeFeed) ListEvents(_ context.Context, _, _ string) ([]calendar.Event, error) {
	return f.events, f.err
}

func TestRecompute_CanonicalizesAndOrders(t *testing.T) {
	// Saturday 2025-06-21; rows carry mixed label formats
	source := &fakeSource{byDate: map[string][]models.Booking{
		"2025-06-21": {
			{Time: "19:00", Status: "confirmed"},
			{Time: "8:00AM", Status: "pending"},
			{Time: "1:00 PM", Status: "confirmed"},
		},
	}}
	store := newFakeStore()
	rec := NewRecomputer(source, store, zap.NewNop(), time.UTC)

	if err := rec.Recompute(context.Background(), "2025-06-21"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := store.entries["2025-06-21"]
	if entry == nil {
		t.Fatal("expected a mirror entry")
	}

	want := []string{"8:00 AM", "1:00 PM", "7:00 PM"}
	if len(entry.TakenTimes) != len(want) {
		t.Fatalf("expected %v, got %v", want, entry.TakenTimes)
	}
	for i, label := range want {
		if entry.TakenTimes[i] != label {
			t.Fatalf("position %d: expected %q, got %q", i, label, entry.TakenTimes[i])
		}
	}
}

func TestRecompute_EmptyAfterCancellation(t *testing.T) {
	// the source already excludes cancelled rows, so the rebuilt entry is empty
	source := &fakeSource{byDate: map[string][]models.Booking{}}
	store := newFakeStore()
	store.entries["2025-06-16"] = &cache.MirrorEntry{TakenTimes: []string{"8:00 AM"}}

	rec := NewRecomputer(source, store, zap.NewNop(), time.UTC)

	if err := rec.Recompute(context.Background(), "2025-06-16"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := store.entries["2025-06-16"]
	if len(entry.TakenTimes) != 0 {
		t.Fatalf("expected empty taken_times, got %v", entry.TakenTimes)
	}
	if entry.UpdatedAt.IsZero() {
		t.Fatal("expected updated_at to be stamped")
	}
}

func TestRecompute_StoreFailureSurfaces(t *testing.T) {
	source := &fakeSource{byDate: map[string][]models.Booking{}}
	store := newFakeStore()
	store.failSet = true

	rec := NewRecomputer(source, store, zap.NewNop(), time.UTC)

	if err := rec.Recompute(context.Background(), "2025-06-16"); err == nil {
		t.Fatal("expected store failure to surface")
	}
}

func TestOrderedTaken_ExtrasFollowTableInClockOrder(t *testing.T) {
	// Monday table has no 9 AM or 2 PM; off-table labels sort by hour after
	// the table slots
	labels := []string{"14:00", "8:00 PM", "9:00 AM", "8:00 AM"}

	got := orderedTaken("2025-06-16", labels, time.UTC)

	want := []string{"8:00 AM", "8:00 PM", "9:00 AM", "2:00 PM"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i, label := range want {
		if got[i] != label {
			t.Fatalf("position %d: expected %q, got %q", i, label, got[i])
		}
	}
}

func TestSyncWindow_MergesLocalAndExternal(t *testing.T) {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	nextMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0).Format("2006-01-02")

	source := &fakeSource{byDate: map[string][]models.Booking{
		today: {{Date: today, Time: "8:00 AM", Status: "confirmed"}},
	}}
	feed := &fakeFeed{events: []calendar.Event{
		{UID: "ev-1", Date: today, Time: "08:00"},     // duplicate of the local booking
		{UID: "ev-2", Date: nextMonth, Time: "19:00"}, // new date
		{UID: "ev-3", Date: "not-a-date", Time: "08:00"},
	}}
	store := newFakeStore()

	syncer := NewSyncer(feed, source, store, zap.NewNop(), time.UTC)

	res, err := syncer.SyncWindow(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.EventsFound != 3 {
		t.Fatalf("expected 3 events found, got %d", res.EventsFound)
	}
	if res.DatesUpdated != 2 {
		t.Fatalf("expected 2 dates updated, got %d", res.DatesUpdated)
	}

	entry := store.entries[today]
	if entry == nil {
		t.Fatalf("expected an entry for %s", today)
	}
	if len(entry.TakenTimes) != 1 || entry.TakenTimes[0] != "8:00 AM" {
		t.Fatalf("local and external labels must collapse to one slot, got %v", entry.TakenTimes)
	}

	if store.entries[nextMonth] == nil {
		t.Fatalf("expected an entry for %s", nextMonth)
	}
}

func TestSyncWindow_SkipsLocalRowsWithBadDate(t *testing.T) {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	// a corrupt row with no date must not publish an entry keyed ""
	source := &fakeSource{byDate: map[string][]models.Booking{
		today: {
			{Date: today, Time: "8:00 AM", Status: "confirmed"},
			{Date: "", Time: "1:00 PM", Status: "confirmed"},
		},
	}}
	store := newFakeStore()

	syncer := NewSyncer(&fakeFeed{}, source, store, zap.NewNop(), time.UTC)

	res, err := syncer.SyncWindow(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.DatesUpdated != 1 {
		t.Fatalf("expected 1 date updated, got %d", res.DatesUpdated)
	}
	if store.entries[""] != nil {
		t.Fatal("no entry may be published under an empty date")
	}
	if store.entries[today] == nil {
		t.Fatalf("expected an entry for %s", today)
	}
}

func TestSyncWindow_IgnoresEventsOutsideWindow(t *testing.T) {
	source := &fakeSource{byDate: map[string][]models.Booking{}}
	store := newFakeStore()
	feed := &fakeFeed{events: []calendar.Event{
		{UID: "ev-old", Date: "2000-01-05", Time: "08:00"},
		{UID: "ev-far", Date: "2099-01-05", Time: "08:00"},
	}}

	syncer := NewSyncer(feed, source, store, zap.NewNop(), time.UTC)

	res, err := syncer.SyncWindow(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.DatesUpdated != 0 {
		t.Fatalf("expected no dates updated, got %d", res.DatesUpdated)
	}
	if len(store.entries) != 0 {
		t.Fatalf("out-of-window events must not publish entries, got %v", store.entries)
	}
}

func TestSyncWindow_FeedFailure(t *testing.T) {
	source := &fakeSource{byDate: map[string][]models.Booking{}}
	store := newFakeStore()
	feed := &fakeFeed{err: errors.New("feed unreachable")}

	syncer := NewSyncer(feed, source, store, zap.NewNop(), time.UTC)

	if _, err := syncer.SyncWindow(context.Background()); err == nil {
		t.Fatal("expected feed failure to surface")
	}
	if len(store.entries) != 0 {
		t.Fatal("no entries should be written when the feed fails")
	}
}
