package booking

import (
	"testing"
	"time"

	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

func TestComputeAvailability_EmptyDay(t *testing.T) {
	// future Saturday, nothing booked
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	slots := ComputeAvailability(date, nil, false, now)

	if len(slots) != 6 {
		t.Fatalf("expected 6 weekend slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.State != SlotAvailable {
			t.Fatalf("slot %s: expected available, got %s", s.Time, s.State)
		}
	}
}

func TestComputeAvailability_BookedMatchesAcrossFormats(t *testing.T) {
	// Saturday 2025-06-21 with a legacy 24h row at 13:00
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		{Time: "13:00", ClientName: "Ana", Source: "online", Status: "confirmed"},
	}

	slots := ComputeAvailability(date, bookings, false, now)

	booked := 0
	for _, s := range slots {
		if s.Time == "1:00 PM" {
			if s.State != SlotBooked {
				t.Fatalf("1:00 PM: expected booked, got %s", s.State)
			}
			if s.ClientName != "Ana" {
				t.Fatalf("1:00 PM: expected occupant Ana, got %q", s.ClientName)
			}
			booked++
			continue
		}
		if s.State != SlotAvailable {
			t.Fatalf("slot %s: expected available, got %s", s.Time, s.State)
		}
	}
	if booked != 1 {
		t.Fatalf("expected exactly one booked slot, got %d", booked)
	}
}

func TestComputeAvailability_BlockedDay(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	bookings := []models.Booking{{Time: "8:00 AM", ClientName: "Bia"}}

	slots := ComputeAvailability(date, bookings, true, now)

	for _, s := range slots {
		if s.State != SlotBlocked {
			t.Fatalf("slot %s: expected blocked, got %s", s.Time, s.State)
		}
	}
}

func TestComputeAvailability_PassedSlots(t *testing.T) {
	// Monday, clock at 1 PM: morning and noon slots are gone
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 16, 13, 0, 0, 0, time.UTC)

	slots := ComputeAvailability(date, nil, false, now)

	want := map[string]SlotState{
		"8:00 AM":  SlotPassed,
		"12:00 PM": SlotPassed,
		"4:00 PM":  SlotAvailable,
		"6:00 PM":  SlotAvailable,
		"8:00 PM":  SlotAvailable,
	}
	for _, s := range slots {
		if s.State != want[s.Time] {
			t.Fatalf("slot %s: expected %s, got %s", s.Time, want[s.Time], s.State)
		}
	}
}

func TestComputeAvailability_PassedOnlyAppliesToToday(t *testing.T) {
	// tomorrow's morning slot is not passed even though the hour is gone today
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 16, 23, 0, 0, 0, time.UTC)

	slots := ComputeAvailability(date, nil, false, now)

	for _, s := range slots {
		if s.State != SlotAvailable {
			t.Fatalf("slot %s: expected available, got %s", s.Time, s.State)
		}
	}
}

func TestComputeAvailability_BookedWinsOverPassed(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 16, 13, 0, 0, 0, time.UTC)

	bookings := []models.Booking{{Time: "08:00", ClientName: "Carla", Status: "completed"}}

	slots := ComputeAvailability(date, bookings, false, now)

	if slots[0].Time != "8:00 AM" || slots[0].State != SlotBooked {
		t.Fatalf("8:00 AM: expected booked, got %s", slots[0].State)
	}
}

func TestStripOccupants(t *testing.T) {
	in := []SlotStatus{
		{Time: "8:00 AM", State: SlotBooked, ClientName: "Ana", Source: "online", BookingStatus: "confirmed"},
		{Time: "12:00 PM", State: SlotAvailable},
	}

	out := StripOccupants(in)

	if out[0].ClientName != "" || out[0].Source != "" || out[0].BookingStatus != "" {
		t.Fatal("occupant metadata must be cleared")
	}
	if out[0].State != SlotBooked || out[0].Time != "8:00 AM" {
		t.Fatal("slot identity and state must survive stripping")
	}
}
