package booking

import (
	"fmt"
	"testing"
)

func TestCanonical_TwelveHour(t *testing.T) {
	cases := map[string]string{
		"8:00 AM":    "8:00 AM",
		"8:00AM":     "8:00 AM",
		"8:00 am":    "8:00 AM",
		"8 PM":       "8:00 PM",
		"12:00 PM":   "12:00 PM",
		"12:00 AM":   "12:00 AM",
		"  1:00 pm ": "1:00 PM",
	}
	for input, want := range cases {
		if got := Canonical(input); got != want {
			t.Fatalf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanonical_TwentyFourHour(t *testing.T) {
	cases := map[string]string{
		"00:00": "12:00 AM",
		"08:00": "8:00 AM",
		"8:00":  "8:00 AM",
		"12:00": "12:00 PM",
		"13:00": "1:00 PM",
		"20:00": "8:00 PM",
		"23:00": "11:00 PM",
	}
	for input, want := range cases {
		if got := Canonical(input); got != want {
			t.Fatalf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanonical_AllHoursAgree(t *testing.T) {
	// every 24h hour and its 12h spelling must collapse to the same label
	for h := 0; h < 24; h++ {
		twelve := h % 12
		if twelve == 0 {
			twelve = 12
		}
		meridiem := "AM"
		if h >= 12 {
			meridiem = "PM"
		}

		a := Canonical(fmt.Sprintf("%02d:00", h))
		b := Canonical(fmt.Sprintf("%d:00 %s", twelve, meridiem))
		c := Canonical(fmt.Sprintf("%d:00%s", twelve, meridiem))

		if a != b || b != c {
			t.Fatalf("hour %d: %q / %q / %q diverge", h, a, b, c)
		}
	}
}

func TestCanonical_Idempotent(t *testing.T) {
	for _, input := range []string{"08:00", "8:00 PM", "13:00", "12:00 AM"} {
		once := Canonical(input)
		if twice := Canonical(once); twice != once {
			t.Fatalf("Canonical(%q) not idempotent: %q then %q", input, once, twice)
		}
	}
}

func TestCanonical_UnparseablePassthrough(t *testing.T) {
	cases := map[string]string{
		"tomorrow":   "tomorrow",
		"  closed  ": "closed",
		"25:00":      "25:00",
		"13:00 PM":   "13:00 PM",
		"":           "",
		"8:":         "8:",
	}
	for input, want := range cases {
		if got := Canonical(input); got != want {
			t.Fatalf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSameSlot(t *testing.T) {
	if !SameSlot("13:00", "1:00 PM") {
		t.Fatal("13:00 and 1:00 PM are the same slot")
	}
	if !SameSlot("8:00AM", "08:00") {
		t.Fatal("8:00AM and 08:00 are the same slot")
	}
	if SameSlot("8:00 AM", "8:00 PM") {
		t.Fatal("8:00 AM and 8:00 PM are different slots")
	}
}

func TestHour24(t *testing.T) {
	cases := map[string]int{
		"12:00 AM": 0,
		"8:00 AM":  8,
		"12:00 PM": 12,
		"1:00 PM":  13,
		"20:00":    20,
	}
	for input, want := range cases {
		got, ok := Hour24(input)
		if !ok {
			t.Fatalf("Hour24(%q) failed to parse", input)
		}
		if got != want {
			t.Fatalf("Hour24(%q) = %d, want %d", input, got, want)
		}
	}

	if _, ok := Hour24("garbage"); ok {
		t.Fatal("Hour24 must reject unparseable labels")
	}
}
