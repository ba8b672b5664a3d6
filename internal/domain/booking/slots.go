package booking

import (
	"time"

	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
)

// Fixed slot tables. Weekdays keep a lighter schedule; weekends open more
// slots. Labels are already in canonical 12h form.
var weekdaySlots = []string{"8:00 AM", "12:00 PM", "4:00 PM", "6:00 PM", "8:00 PM"}
var weekendSlots = []string{"8:00 AM", "10:00 AM", "1:00 PM", "3:00 PM", "5:00 PM", "7:00 PM"}

// SlotsFor returns the offerable slot labels for a date, in schedule order.
func SlotsFor(date time.Time) []string {
	table := weekdaySlots
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		table = weekendSlots
	}

	out := make([]string, len(table))
	copy(out, table)
	return out
}

// ParseDate parses a YYYY-MM-DD string as a calendar date in the given
// location. Parsing in the studio's location (never UTC) keeps the weekday
// classification from drifting a day at timezone boundaries.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return date, nil
}
