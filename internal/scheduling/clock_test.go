package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:00", 0, true},
		{"09-00", 0, true},
		{"0900", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseClock(%q)", tt.in)
			continue
		}
		assert.NoError(t, err, "ParseClock(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseClock(%q)", tt.in)
	}
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(morning, evening))
	assert.False(t, SameCalendarDay(morning, nextDay))
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 6, 1, 17, 45, 12, 99, time.UTC)
	got := DateOnly(ts)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
}
