package booking

import (
	"time"

	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(bk *models.Booking) error {
	if err := CanConfirm(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusConfirmed)
	return nil
}

func Cancel(bk *models.Booking, now time.Time) error {
	if err := CanCancel(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusCancelled)
	bk.CancelledAt = &now
	return nil
}

func Complete(bk *models.Booking, now time.Time) error {
	if err := CanComplete(Status(bk.Status)); err != nil {
		return err
	}

	bk.Status = string(StatusCompleted)
	bk.CompletedAt = &now
	return nil
}
