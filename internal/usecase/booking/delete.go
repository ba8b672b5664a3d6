package booking

import (
	"context"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
)

// DeleteBooking is the explicit admin hard-delete; the slot claim goes with
// the row and the date's mirror entry is rebuilt.
type DeleteBooking struct {
	repo   domain.Repository
	mirror MirrorTrigger
	audit  AuditTrail
}

func NewDeleteBooking(
	repo domain.Repository,
	mirrorDispatcher MirrorTrigger,
	auditDispatcher AuditTrail,
) *DeleteBooking {
	return &DeleteBooking{
		repo:   repo,
		mirror: mirrorDispatcher,
		audit:  auditDispatcher,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	studioID uint,
	userID *uint,
	bookingID uint,
) error {

	bk, err := uc.repo.GetBooking(ctx, bookingID, studioID)
	if err != nil {
		return httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.DeleteBooking(ctx, bk); err != nil {
		return err
	}

	uc.mirror.Enqueue(bk.Date)

	uc.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   userID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
		Metadata: map[string]string{
			"booking_code": bk.BookingCode,
			"date":         bk.Date,
			"time":         bk.Time,
		},
	})

	return nil
}
