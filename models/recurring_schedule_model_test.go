package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesOfClock(t *testing.T) {
	got, err := MinutesOfClock("10:30")
	require.NoError(t, err)
	assert.Equal(t, 630, got)

	_, err = MinutesOfClock("25:00")
	assert.Error(t, err)
	_, err = MinutesOfClock("1030")
	assert.Error(t, err)
}

func TestScheduleDurationMinutes(t *testing.T) {
	s := RecurringSchedule{StartTime: "09:00", EndTime: "09:50"}
	got, err := s.DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 50, got)
}

func TestScheduleOverlaps(t *testing.T) {
	base := RecurringSchedule{DayOfWeek: 2, StartTime: "10:00", EndTime: "10:50"}

	tests := []struct {
		name  string
		other RecurringSchedule
		want  bool
	}{
		{"same window", RecurringSchedule{DayOfWeek: 2, StartTime: "10:00", EndTime: "10:50"}, true},
		{"partial overlap", RecurringSchedule{DayOfWeek: 2, StartTime: "10:25", EndTime: "11:15"}, true},
		{"containing window", RecurringSchedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"}, true},
		{"back to back", RecurringSchedule{DayOfWeek: 2, StartTime: "10:50", EndTime: "11:40"}, false},
		{"different day", RecurringSchedule{DayOfWeek: 3, StartTime: "10:00", EndTime: "10:50"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(&tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(&base))
		})
	}
}
