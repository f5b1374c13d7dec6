package scheduling

import (
	"time"

	"clinic-booking-server/internal/models"
)

// AvailabilityOutcome is the result of matching a requested window against
// a doctor's availability calendar.
type AvailabilityOutcome int

const (
	// NoConfiguredSlots means the calendar is empty. This is deliberately
	// distinct from NoCoveringSlot: a doctor who never configured hours must
	// remain assignable, with a warning instead of a rejection.
	NoConfiguredSlots AvailabilityOutcome = iota
	// NoCoveringSlot means slots exist but none cover the requested window.
	NoCoveringSlot
	// SlotCovered means an open slot on the requested date covers the window.
	SlotCovered
)

// MatchAvailability scans the profile's slots for one that is not closed,
// falls on the requested calendar day, and fully covers [start, end].
// Malformed slot times are skipped rather than failing the whole lookup.
func MatchAvailability(profile *models.DoctorProfile, date time.Time, start, end string) AvailabilityOutcome {
	if profile == nil || len(profile.Availability) == 0 {
		return NoConfiguredSlots
	}

	reqStart, err := ParseClock(start)
	if err != nil {
		return NoCoveringSlot
	}
	reqEnd, err := ParseClock(end)
	if err != nil {
		return NoCoveringSlot
	}

	for _, slot := range profile.Availability {
		if slot.IsClosed || !SameCalendarDay(slot.Date, date) {
			continue
		}
		slotStart, err := ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		slotEnd, err := ParseClock(slot.EndTime)
		if err != nil {
			continue
		}
		if slotStart <= reqStart && slotEnd >= reqEnd {
			return SlotCovered
		}
	}
	return NoCoveringSlot
}
