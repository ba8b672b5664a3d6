package booking

import (
	"context"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

type ConfirmBooking struct {
	repo  domain.Repository
	audit AuditTrail
}

func NewConfirmBooking(
	repo domain.Repository,
	auditDispatcher AuditTrail,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	studioID uint,
	userID *uint,
	bookingID uint,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, bookingID, studioID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Confirm(bk); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   userID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
