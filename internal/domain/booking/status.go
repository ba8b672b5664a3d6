package booking

import "github.com/VelvetStudioBR/studio-booking/internal/httperr"

// ===============================
// Booking Status / Source
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Source string

const (
	SourceOnline Source = "online"
	SourceWalkIn Source = "walk-in"
)

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus returns the status a new booking starts in. Walk-ins are
// registered by staff at the counter, so they skip the pending stage.
func InitialStatus(source Source) Status {
	if source == SourceWalkIn {
		return StatusConfirmed
	}
	return StatusPending
}

func IsActive(status string) bool {
	return status != string(StatusCancelled)
}
