package booking

import (
	"context"
	"time"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
)

// MirrorTrigger schedules an availability mirror recompute for a date.
type MirrorTrigger interface {
	Enqueue(date string)
}

// AuditTrail records domain actions asynchronously.
type AuditTrail interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StudioID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	DesignName string

	Date string // YYYY-MM-DD
	Time string // slot label, 12h or 24h

	Source domain.Source

	TotalAmount float64
	AmountPaid  float64
	Notes       string

	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	mirror MirrorTrigger
	audit  AuditTrail
}

func NewCreateBooking(
	repo domain.Repository,
	mirrorDispatcher MirrorTrigger,
	auditDispatcher AuditTrail,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		mirror: mirrorDispatcher,
		audit:  auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	studio, err := uc.repo.GetStudioByID(ctx, in.StudioID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)

	// Date must parse in the studio's location; no silent fallback.
	date, err := domain.ParseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}

	// The requested slot must belong to the date's table.
	canonical := domain.Canonical(in.Time)
	if !slotInTable(date, canonical) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	blocked, err := uc.repo.IsDayBlocked(ctx, in.Date)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, httperr.ErrBusiness("day_blocked")
	}

	now := timezone.NowIn(studio.Timezone)
	if hour, ok := domain.Hour24(canonical); ok {
		moment := time.Date(
			date.Year(), date.Month(), date.Day(),
			hour, 0, 0, 0,
			loc,
		)
		if moment.Before(now) {
			return nil, httperr.ErrBusiness("slot_in_past")
		}
	}

	bk := &models.Booking{
		StudioID:    in.StudioID,
		BookingCode: domain.NewBookingCode(),
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: in.ClientEmail,
		DesignName:  in.DesignName,
		Date:        in.Date,
		Time:        canonical,
		Status:      string(domain.InitialStatus(in.Source)),
		Source:      string(in.Source),
		TotalAmount: in.TotalAmount,
		AmountPaid:  in.AmountPaid,
		Notes:       in.Notes,
		UserID:      in.UserID,
	}

	// The slot claim's unique index turns the conflict check into an
	// enforced constraint; a concurrent writer loses cleanly here.
	if err := uc.repo.CreateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.mirror.Enqueue(bk.Date)

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		UserID:   in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}

func slotInTable(date time.Time, canonical string) bool {
	for _, slot := range domain.SlotsFor(date) {
		if slot == canonical {
			return true
		}
	}
	return false
}
