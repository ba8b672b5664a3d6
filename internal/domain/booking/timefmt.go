package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical normalizes a slot label to "<1-12>:00 <AM|PM>". It accepts 12h
// input with or without a space before the meridiem, any case, and 24h
// "HH:MM" input. Minutes are always rendered "00": the studio only offers
// on-the-hour slots. Unparseable input is returned trimmed and unchanged so
// dirty legacy rows never break an availability computation.
func Canonical(label string) string {
	s := strings.TrimSpace(label)
	if s == "" {
		return s
	}

	upper := strings.ToUpper(s)

	var meridiem string
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
	}

	if meridiem != "" {
		body := strings.TrimSpace(strings.TrimSuffix(upper, meridiem))
		hour, ok := parseHour(body)
		if !ok || hour < 1 || hour > 12 {
			return s
		}
		return fmt.Sprintf("%d:00 %s", hour, meridiem)
	}

	// 24h form
	hour, ok := parseHour(upper)
	if !ok || hour < 0 || hour > 23 {
		return s
	}

	switch {
	case hour == 0:
		return "12:00 AM"
	case hour == 12:
		return "12:00 PM"
	case hour > 12:
		return fmt.Sprintf("%d:00 PM", hour-12)
	default:
		return fmt.Sprintf("%d:00 AM", hour)
	}
}

// SameSlot reports whether two labels name the same slot. Canonical string
// equality is the sole arbiter of slot identity.
func SameSlot(a, b string) bool {
	return Canonical(a) == Canonical(b)
}

// Hour24 converts a slot label to its 24h hour. The second return is false
// for labels Canonical cannot parse.
func Hour24(label string) (int, bool) {
	c := Canonical(label)

	var meridiem string
	switch {
	case strings.HasSuffix(c, " AM"):
		meridiem = "AM"
	case strings.HasSuffix(c, " PM"):
		meridiem = "PM"
	default:
		return 0, false
	}

	hour, ok := parseHour(strings.TrimSuffix(c, " "+meridiem))
	if !ok {
		return 0, false
	}

	if meridiem == "AM" {
		if hour == 12 {
			return 0, true
		}
		return hour, true
	}
	if hour == 12 {
		return 12, true
	}
	return hour + 12, true
}

// parseHour reads the hour out of "H", "H:MM" or "HH:MM". Minutes are
// accepted but discarded.
func parseHour(s string) (int, bool) {
	hourPart := s
	if idx := strings.Index(s, ":"); idx >= 0 {
		hourPart = s[:idx]
		minPart := s[idx+1:]
		if minPart == "" {
			return 0, false
		}
		if _, err := strconv.Atoi(minPart); err != nil {
			return 0, false
		}
	}

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return 0, false
	}
	return hour, true
}
