package booking

import (
	"context"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit AuditTrail
}

func NewCompleteBooking(
	repo domain.Repository,
	auditDispatcher AuditTrail,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	studioID uint,
	userID *uint,
	bookingID uint,
	amountPaid float64,
) (*models.Booking, error) {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	bk, err := uc.repo.GetBooking(ctx, bookingID, studioID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(studio.Timezone)
	if err := domain.Complete(bk, now); err != nil {
		return nil, err
	}

	if amountPaid > 0 {
		bk.AmountPaid = amountPaid
	}

	if err := uc.repo.SaveBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   userID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
