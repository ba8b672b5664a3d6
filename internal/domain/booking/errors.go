package booking

import "fmt"

// ConflictError is returned when a non-cancelled booking already occupies
// the requested (date, canonical time) slot. It carries the occupant's
// client name for the user-facing message.
type ConflictError struct {
	Date       string
	Time       string
	ClientName string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("slot %s %s already taken", e.Date, e.Time)
}
