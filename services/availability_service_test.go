package services

import (
	"testing"
	"time"

	"github.com/manelteacher/spanish_classes/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestExpandSchedulesProjectsOneSlotPerWeek(t *testing.T) {
	madrid := mustLoad(t, "Europe/Madrid")

	rule := models.RecurringSchedule{
		ID:        uuid.New(),
		TeacherID: uuid.New(),
		DayOfWeek: 0, // Monday
		StartTime: "10:00",
		EndTime:   "10:50",
		Active:    true,
	}

	// Wednesday 2026-07-01: first matching Monday is 2026-07-06.
	horizonStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	slots := ExpandSchedules([]models.RecurringSchedule{rule}, horizonStart, 4, madrid, time.UTC, nil)

	require.Len(t, slots, 4)
	// Madrid is UTC+2 in July.
	assert.Equal(t, time.Date(2026, 7, 6, 8, 0, 0, 0, time.UTC), slots[0].StartUTC)
	assert.Equal(t, time.Date(2026, 7, 6, 8, 50, 0, 0, time.UTC), slots[0].EndUTC)
	for i, slot := range slots {
		assert.Equal(t, time.Monday, slot.StartUTC.In(madrid).Weekday())
		assert.Equal(t, rule.ID, slot.ScheduleID)
		assert.True(t, slot.Recurring)
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, slot.StartUTC.Sub(slots[i-1].StartUTC))
		}
	}
}

func TestExpandSchedulesSuppressesBookedStarts(t *testing.T) {
	madrid := mustLoad(t, "Europe/Madrid")

	rule := models.RecurringSchedule{
		ID:        uuid.New(),
		TeacherID: uuid.New(),
		DayOfWeek: 0,
		StartTime: "10:00",
		EndTime:   "10:50",
		Active:    true,
	}

	horizonStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	booked := []time.Time{time.Date(2026, 7, 13, 8, 0, 0, 0, time.UTC)}

	slots := ExpandSchedules([]models.RecurringSchedule{rule}, horizonStart, 4, madrid, time.UTC, booked)

	require.Len(t, slots, 3)
	for _, slot := range slots {
		assert.NotEqual(t, booked[0], slot.StartUTC)
	}
}

func TestExpandSchedulesSkipsInactiveAndMalformedRules(t *testing.T) {
	madrid := mustLoad(t, "Europe/Madrid")
	teacherID := uuid.New()

	rules := []models.RecurringSchedule{
		{ID: uuid.New(), TeacherID: teacherID, DayOfWeek: 1, StartTime: "09:00", EndTime: "09:50", Active: false},
		{ID: uuid.New(), TeacherID: teacherID, DayOfWeek: 2, StartTime: "bogus", EndTime: "10:50", Active: true},
	}

	horizonStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	slots := ExpandSchedules(rules, horizonStart, 4, madrid, time.UTC, nil)

	assert.Empty(t, slots)
}

func TestExpandSchedulesRendersViewerTimezone(t *testing.T) {
	madrid := mustLoad(t, "Europe/Madrid")
	tokyo := mustLoad(t, "Asia/Tokyo")

	rule := models.RecurringSchedule{
		ID:        uuid.New(),
		TeacherID: uuid.New(),
		DayOfWeek: 0,
		StartTime: "10:00",
		EndTime:   "10:50",
		Active:    true,
	}

	horizonStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	slots := ExpandSchedules([]models.RecurringSchedule{rule}, horizonStart, 1, madrid, tokyo, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, "Asia/Tokyo", slots[0].ViewerZone)
	// 08:00 UTC is 17:00 in Tokyo.
	assert.Equal(t, "2026-07-06T17:00:00+09:00", slots[0].Start)
	assert.Equal(t, "2026-07-06T17:50:00+09:00", slots[0].End)
}

func TestExpandSchedulesSortsAcrossRules(t *testing.T) {
	madrid := mustLoad(t, "Europe/Madrid")
	teacherID := uuid.New()

	rules := []models.RecurringSchedule{
		{ID: uuid.New(), TeacherID: teacherID, DayOfWeek: 4, StartTime: "18:00", EndTime: "18:50", Active: true},
		{ID: uuid.New(), TeacherID: teacherID, DayOfWeek: 0, StartTime: "10:00", EndTime: "10:50", Active: true},
	}

	horizonStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	slots := ExpandSchedules(rules, horizonStart, 2, madrid, time.UTC, nil)

	require.Len(t, slots, 4)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartUTC.Before(slots[i].StartUTC))
	}
}
