package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/manelteacher/spanish_classes/models"
)

// HorizonWeeks is how far ahead recurring schedules are projected.
const HorizonWeeks = 4

// AvailableSlot is one concrete booking window derived from a recurring
// schedule. StartUTC/EndUTC anchor the slot for conflict checks and booking
// creation; Start/End are the same instants rendered in the viewer's timezone
// for display only.
type AvailableSlot struct {
	ScheduleID uuid.UUID `json:"schedule_id"`
	TeacherID  uuid.UUID `json:"teacher_id"`
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Recurring  bool      `json:"recurring"`
	ViewerZone string    `json:"viewer_timezone"`
}

// mondayIndex converts Go's Sunday-based weekday to the 0 = Monday numbering
// used by RecurringSchedule.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// ExpandSchedules projects the given weekly rules over a horizon of `weeks`
// weeks starting at horizonStart. For each (rule, week) pair the next calendar
// date on or after the week's start whose weekday matches the rule is combined
// with the rule's wall-clock times in teacherLoc, then converted to UTC. Slots
// whose exact UTC start appears in booked are suppressed. Inactive rules and
// rules with malformed clock strings yield nothing.
func ExpandSchedules(schedules []models.RecurringSchedule, horizonStart time.Time, weeks int, teacherLoc, viewerLoc *time.Location, booked []time.Time) []AvailableSlot {
	taken := make(map[int64]bool, len(booked))
	for _, t := range booked {
		taken[t.Unix()] = true
	}

	viewerName := viewerLoc.String()
	slots := make([]AvailableSlot, 0, weeks*len(schedules))
	for week := 0; week < weeks; week++ {
		weekStart := horizonStart.AddDate(0, 0, 7*week)
		for i := range schedules {
			s := &schedules[i]
			if !s.Active {
				continue
			}
			startMin, err := models.MinutesOfClock(s.StartTime)
			if err != nil {
				continue
			}
			endMin, err := models.MinutesOfClock(s.EndTime)
			if err != nil {
				continue
			}

			offset := (s.DayOfWeek - mondayIndex(weekStart.Weekday()) + 7) % 7
			day := weekStart.AddDate(0, 0, offset)
			y, m, d := day.Date()

			startUTC := time.Date(y, m, d, startMin/60, startMin%60, 0, 0, teacherLoc).UTC()
			endUTC := time.Date(y, m, d, endMin/60, endMin%60, 0, 0, teacherLoc).UTC()
			if taken[startUTC.Unix()] {
				continue
			}

			slots = append(slots, AvailableSlot{
				ScheduleID: s.ID,
				TeacherID:  s.TeacherID,
				StartUTC:   startUTC,
				EndUTC:     endUTC,
				Start:      startUTC.In(viewerLoc).Format(time.RFC3339),
				End:        endUTC.In(viewerLoc).Format(time.RFC3339),
				Recurring:  true,
				ViewerZone: viewerName,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartUTC.Before(slots[j].StartUTC) })
	return slots
}
