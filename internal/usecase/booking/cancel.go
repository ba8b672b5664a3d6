package booking

import (
	"context"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
)

type CancelBooking struct {
	repo   domain.Repository
	mirror MirrorTrigger
	audit  AuditTrail
}

func NewCancelBooking(
	repo domain.Repository,
	mirrorDispatcher MirrorTrigger,
	auditDispatcher AuditTrail,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		mirror: mirrorDispatcher,
		audit:  auditDispatcher,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	studioID uint,
	userID *uint,
	bookingID uint,
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
	if err := domain.Cancel(bk, now); err != nil {
		return nil, err
	}

	// Releases the slot claim together with the status change.
	if err := uc.repo.SaveBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.mirror.Enqueue(bk.Date)

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
