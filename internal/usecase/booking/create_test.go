package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	studio   models.Studio
	bookings []*models.Booking
	claims   map[string]uint // date|canonical time -> booking id
	blocked  map[string]bool
	nextID   uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		studio:  models.Studio{ID: 1, Name: "Velvet", Slug: "velvet", Timezone: "UTC"},
		claims:  map[string]uint{},
		blocked: map[string]bool{},
		nextID:  1,
	}
}

func claimKey(date, label string) string {
	return date + "|" + domain.Canonical(label)
}

func (r *fakeRepo) GetStudioByID(_ context.Context, id uint) (*models.Studio, error) {
	if id != r.studio.ID {
		return nil, errors.New("studio not found")
	}
	s := r.studio
	return &s, nil
}

func (r *fakeRepo) GetStudioBySlug(_ context.Context, slug string) (*models.Studio, error) {
	if slug != r.studio.Slug {
		return nil, errors.New("studio not found")
	}
	s := r.studio
	return &s, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, bk *models.Booking) error {
	key := claimKey(bk.Date, bk.Time)
	if id, taken := r.claims[key]; taken {
		occupant := ""
		for _, b := range r.bookings {
			if b.ID == id {
				occupant = b.ClientName
			}
		}
		return domain.ConflictError{Date: bk.Date, Time: bk.Time, ClientName: occupant}
	}
	bk.ID = r.nextID
	r.nextID++
	r.bookings = append(r.bookings, bk)
	r.claims[key] = bk.ID
	return nil
}

func (r *fakeRepo) SaveBooking(_ context.Context, bk *models.Booking) error {
	if bk.Status == string(domain.StatusCancelled) {
		delete(r.claims, claimKey(bk.Date, bk.Time))
	}
	return nil
}

func (r *fakeRepo) DeleteBooking(_ context.Context, bk *models.Booking) error {
	delete(r.claims, claimKey(bk.Date, bk.Time))
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, bookingID, studioID uint) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == bookingID && b.StudioID == studioID {
			return b, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) GetBookingByCode(_ context.Context, code string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.BookingCode == code {
			return b, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) ListActiveByDate(_ context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && domain.IsActive(b.Status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveByDateRange(_ context.Context, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date >= from && b.Date <= to && domain.IsActive(b.Status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) IsDayBlocked(_ context.Context, date string) (bool, error) {
	return r.blocked[date], nil
}

func (r *fakeRepo) SetBlockedDay(_ context.Context, day *models.BlockedDay) error {
	r.blocked[day.Date] = true
	return nil
}

func (r *fakeRepo) ClearBlockedDay(_ context.Context, date string) error {
	delete(r.blocked, date)
	return nil
}

func (r *fakeRepo) ListBlockedDays(_ context.Context, from, to string) ([]models.BlockedDay, error) {
	return nil, nil
}

func (r *fakeRepo) ListByDate(_ context.Context, studioID uint, date string) ([]models.Booking, error) {
	return r.ListActiveByDate(context.Background(), date)
}

func (r *fakeRepo) ListByMonth(_ context.Context, studioID uint, year, month int) ([]models.Booking, error) {
	return nil, nil
}

type fakeMirror struct {
	enqueued []string
}

func (m *fakeMirror) Enqueue(date string) {
	m.enqueued = append(m.enqueued, date)
}

type fakeAudit struct {
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

// futureSlot picks a date far enough ahead that no slot can be in the past,
// together with a valid label from that date's table.
func futureSlot(t *testing.T) (string, string) {
	t.Helper()
	date := time.Now().UTC().AddDate(0, 1, 0)
	label := domain.SlotsFor(date)[0]
	return date.Format("2006-01-02"), label
}

// ======================================================
// TESTS
// ======================================================

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	mirror := &fakeMirror{}
	trail := &fakeAudit{}
	uc := NewCreateBooking(repo, mirror, trail)

	date, label := futureSlot(t)

	bk, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Ana",
		Date:       date,
		Time:       label,
		Source:     domain.SourceOnline,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bk.Status != string(domain.StatusPending) {
		t.Fatalf("online booking should start pending, got %s", bk.Status)
	}
	if bk.BookingCode == "" {
		t.Fatal("expected a booking code")
	}
	if bk.Time != domain.Canonical(label) {
		t.Fatalf("stored time %q is not canonical", bk.Time)
	}
	if len(mirror.enqueued) != 1 || mirror.enqueued[0] != date {
		t.Fatalf("expected one mirror enqueue for %s, got %v", date, mirror.enqueued)
	}
	if len(trail.events) != 1 || trail.events[0].Action != "booking_created" {
		t.Fatalf("expected one booking_created audit event, got %v", trail.events)
	}
}

func TestCreateBooking_WalkInStartsConfirmed(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeMirror{}, &fakeAudit{})

	date, label := futureSlot(t)

	bk, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Bia",
		Date:       date,
		Time:       label,
		Source:     domain.SourceWalkIn,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bk.Status != string(domain.StatusConfirmed) {
		t.Fatalf("walk-in booking should start confirmed, got %s", bk.Status)
	}
}

func TestCreateBooking_ConflictAcrossFormats(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeMirror{}, &fakeAudit{})

	date, label := futureSlot(t)

	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Ana",
		Date:       date,
		Time:       label,
		Source:     domain.SourceOnline,
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// same slot spelled in 24h form
	hour, ok := domain.Hour24(label)
	if !ok {
		t.Fatalf("cannot derive 24h form of %q", label)
	}
	alt := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04")

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Bia",
		Date:       date,
		Time:       alt,
		Source:     domain.SourceOnline,
	})

	var conflict domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.ClientName != "Ana" {
		t.Fatalf("expected occupant Ana, got %q", conflict.ClientName)
	}
}

func TestCreateBooking_CancelledSlotFreesUp(t *testing.T) {
	repo := newFakeRepo()
	mirror := &fakeMirror{}
	trail := &fakeAudit{}
	create := NewCreateBooking(repo, mirror, trail)
	cancel := NewCancelBooking(repo, mirror, trail)

	date, label := futureSlot(t)

	first, err := create.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Ana",
		Date:       date,
		Time:       label,
		Source:     domain.SourceOnline,
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	if _, err := cancel.Execute(context.Background(), 1, nil, first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := create.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Bia",
		Date:       date,
		Time:       label,
		Source:     domain.SourceOnline,
	}); err != nil {
		t.Fatalf("slot should be free after cancellation, got %v", err)
	}
}

func TestCreateBooking_RejectsSlotOutsideTable(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeMirror{}, &fakeAudit{})

	date, _ := futureSlot(t)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Ana",
		Date:       date,
		Time:       "9:00 AM", // never in any table
		Source:     domain.SourceOnline,
	})
	if !httperr.IsBusiness(err, "invalid_time") {
		t.Fatalf("expected invalid_time, got %v", err)
	}
}

func TestCreateBooking_RejectsBlockedDay(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeMirror{}, &fakeAudit{})

	date, label := futureSlot(t)
	repo.blocked[date] = true

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Ana",
		Date:       date,
		Time:       label,
		Source:     domain.SourceOnline,
	})
	if !httperr.IsBusiness(err, "day_blocked") {
		t.Fatalf("expected day_blocked, got %v", err)
	}
}

func TestCreateBooking_RejectsPastSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeMirror{}, &fakeAudit{})

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	label := domain.SlotsFor(yesterday)[0]

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Ana",
		Date:       yesterday.Format("2006-01-02"),
		Time:       label,
		Source:     domain.SourceOnline,
	})
	if !httperr.IsBusiness(err, "slot_in_past") {
		t.Fatalf("expected slot_in_past, got %v", err)
	}
}

func TestCreateBooking_RejectsMalformedDate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, &fakeMirror{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		StudioID:   1,
		ClientName: "Ana",
		Date:       "16/06/2025",
		Time:       "8:00 AM",
		Source:     domain.SourceOnline,
	})
	if !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("expected invalid_date, got %v", err)
	}
}
