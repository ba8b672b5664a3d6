package booking

import (
	"testing"
	"time"
)

func TestSlotsFor_Weekday(t *testing.T) {
	// 2025-06-16 is a Monday
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	slots := SlotsFor(date)

	want := []string{"8:00 AM", "12:00 PM", "4:00 PM", "6:00 PM", "8:00 PM"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, label := range want {
		if slots[i] != label {
			t.Fatalf("slot %d: expected %q, got %q", i, label, slots[i])
		}
	}
}

func TestSlotsFor_Weekend(t *testing.T) {
	// 2025-06-21 is a Saturday
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	slots := SlotsFor(date)

	want := []string{"8:00 AM", "10:00 AM", "1:00 PM", "3:00 PM", "5:00 PM", "7:00 PM"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, label := range want {
		if slots[i] != label {
			t.Fatalf("slot %d: expected %q, got %q", i, label, slots[i])
		}
	}
}

func TestSlotsFor_CountsAcrossWeek(t *testing.T) {
	// 2025-06-16 through 2025-06-22: Mon..Sun
	start := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)

		want := 5
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			want = 6
		}

		if got := len(SlotsFor(date)); got != want {
			t.Fatalf("%s: expected %d slots, got %d", date.Weekday(), want, got)
		}
	}
}

func TestSlotsFor_ReturnsCopy(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	first := SlotsFor(date)
	first[0] = "mutated"

	if SlotsFor(date)[0] != "8:00 AM" {
		t.Fatal("SlotsFor must not expose the shared table")
	}
}

func TestParseDate_Valid(t *testing.T) {
	loc := time.UTC

	date, err := ParseDate("2025-06-16", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if date.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", date.Weekday())
	}
}

func TestParseDate_Invalid(t *testing.T) {
	loc := time.UTC

	for _, input := range []string{"", "2025-13-01", "16/06/2025", "not-a-date", "2025-06-32"} {
		if _, err := ParseDate(input, loc); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
