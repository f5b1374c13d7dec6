package scheduling

import (
	"fmt"
	"time"
)

// ParseClock converts a zero-padded "HH:MM" wall-clock string to
// minutes since midnight. Comparing minute values instead of raw strings
// removes the dependency on lexicographic ordering.
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", value)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid clock time %q: want HH:MM", value)
		}
	}
	hh := int(value[0]-'0')*10 + int(value[1]-'0')
	mm := int(value[3]-'0')*10 + int(value[4]-'0')
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", value)
	}
	return hh*60 + mm, nil
}

// SameCalendarDay reports whether two timestamps fall on the same calendar
// day. Availability dates are time-zone-naive, so only Y/M/D is compared.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates a timestamp to midnight UTC so stored scheduled dates
// compare by calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
