package scheduling

import (
	"testing"
	"time"

	"clinic-booking-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func slotOn(date time.Time, start, end string) models.AvailabilitySlot {
	return models.AvailabilitySlot{
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		MaxPatients: 1,
	}
}

func TestMatchAvailability(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	otherDay := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		profile *models.DoctorProfile
		date    time.Time
		start   string
		end     string
		want    AvailabilityOutcome
	}{
		{
			name:    "nil profile",
			profile: nil,
			date:    day, start: "09:00", end: "09:30",
			want: NoConfiguredSlots,
		},
		{
			name:    "empty calendar",
			profile: &models.DoctorProfile{},
			date:    day, start: "09:00", end: "09:30",
			want: NoConfiguredSlots,
		},
		{
			name: "exact slot match",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				slotOn(day, "09:00", "09:30"),
			}},
			date: day, start: "09:00", end: "09:30",
			want: SlotCovered,
		},
		{
			name: "window inside wider slot",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				slotOn(day, "08:00", "12:00"),
			}},
			date: day, start: "10:00", end: "10:30",
			want: SlotCovered,
		},
		{
			name: "window outside slot hours",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				slotOn(day, "09:00", "09:30"),
			}},
			date: day, start: "10:00", end: "10:30",
			want: NoCoveringSlot,
		},
		{
			name: "window overlaps slot end",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				slotOn(day, "09:00", "10:00"),
			}},
			date: day, start: "09:45", end: "10:15",
			want: NoCoveringSlot,
		},
		{
			name: "slot on different day",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				slotOn(otherDay, "09:00", "12:00"),
			}},
			date: day, start: "09:00", end: "09:30",
			want: NoCoveringSlot,
		},
		{
			name: "slot date carries a time component",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				slotOn(day.Add(14*time.Hour), "09:00", "12:00"),
			}},
			date: day, start: "09:00", end: "09:30",
			want: SlotCovered,
		},
		{
			name: "closed slot is skipped",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				{Date: day, StartTime: "09:00", EndTime: "12:00", IsClosed: true},
			}},
			date: day, start: "09:00", end: "09:30",
			want: NoCoveringSlot,
		},
		{
			name: "malformed slot is skipped, later slot matches",
			profile: &models.DoctorProfile{Availability: []models.AvailabilitySlot{
				{Date: day, StartTime: "9:00", EndTime: "noon"},
				slotOn(day, "09:00", "12:00"),
			}},
			date: day, start: "09:00", end: "09:30",
			want: SlotCovered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchAvailability(tt.profile, tt.date, tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}
