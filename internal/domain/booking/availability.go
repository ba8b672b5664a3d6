package booking

import (
	"time"

	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotBooked    SlotState = "booked"
	SlotPassed    SlotState = "passed"
	SlotBlocked   SlotState = "blocked"
)

// SlotStatus is the computed state of one slot on one date. Occupant fields
// are filled only for booked slots and are meant for admin views; public
// responses must be stripped before serialization.
type SlotStatus struct {
	Time  string    `json:"time"`
	State SlotState `json:"state"`

	ClientName    string `json:"client_name,omitempty"`
	Source        string `json:"source,omitempty"`
	BookingStatus string `json:"booking_status,omitempty"`
}

// ComputeAvailability marks every slot of the date's table as available,
// booked, passed or blocked. bookings must already exclude cancelled rows.
// Pure function: safe to re-run on every navigation.
func ComputeAvailability(
	date time.Time,
	bookings []models.Booking,
	blocked bool,
	now time.Time,
) []SlotStatus {

	occupied := make(map[string]*models.Booking, len(bookings))
	for i := range bookings {
		key := Canonical(bookings[i].Time)
		if _, taken := occupied[key]; !taken {
			occupied[key] = &bookings[i]
		}
	}

	sameDay := date.Year() == now.Year() &&
		date.Month() == now.Month() &&
		date.Day() == now.Day()

	slots := SlotsFor(date)
	out := make([]SlotStatus, 0, len(slots))

	for _, label := range slots {
		st := SlotStatus{Time: label, State: SlotAvailable}

		if blocked {
			st.State = SlotBlocked
			out = append(out, st)
			continue
		}

		if bk, taken := occupied[label]; taken {
			st.State = SlotBooked
			st.ClientName = bk.ClientName
			st.Source = bk.Source
			st.BookingStatus = bk.Status
			out = append(out, st)
			continue
		}

		if sameDay {
			if hour, ok := Hour24(label); ok {
				moment := time.Date(
					date.Year(), date.Month(), date.Day(),
					hour, 0, 0, 0,
					date.Location(),
				)
				if moment.Before(now) {
					st.State = SlotPassed
				}
			}
		}

		out = append(out, st)
	}

	return out
}

// StripOccupants clears occupant metadata for public consumption.
func StripOccupants(slots []SlotStatus) []SlotStatus {
	out := make([]SlotStatus, len(slots))
	for i, s := range slots {
		out[i] = SlotStatus{Time: s.Time, State: s.State}
	}
	return out
}
