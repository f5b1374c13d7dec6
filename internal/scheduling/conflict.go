package scheduling

import (
	"context"
	"time"
)

// HasConflict reports whether another live appointment already occupies the
// exact (doctor, date, start) slot. Conflict is keyed on the exact triple,
// not interval overlap: slot granularity is fixed by the availability
// calendar, so an exact-start collision is the double-booking signal.
// excludeID lets an appointment be re-saved onto its own slot.
func (s *Service) HasConflict(ctx context.Context, doctorID string, date time.Time, start string, excludeID string) (bool, error) {
	count, err := s.store.CountSlotConflicts(ctx, doctorID, date, start, excludeID)
	if err != nil {
		return false, storeFailure("conflict lookup failed", err)
	}
	return count > 0, nil
}
