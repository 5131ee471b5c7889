package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecurringSchedule is a teacher's weekly availability rule. Days of the week
// are numbered 0 = Monday through 6 = Sunday; times are "HH:MM" wall-clock
// strings in the teacher's home timezone.
type RecurringSchedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID uuid.UUID `gorm:"not null;uniqueIndex:idx_teacher_day_times" json:"teacher_id"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_teacher_day_times" json:"day_of_week"`
	StartTime string    `gorm:"size:5;not null;uniqueIndex:idx_teacher_day_times" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null;uniqueIndex:idx_teacher_day_times" json:"end_time"`
	Active    bool      `gorm:"not null;default:true" json:"active"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// MinutesOfClock converts an "HH:MM" string to minutes since midnight.
func MinutesOfClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DurationMinutes returns end - start in minutes, or an error when either
// clock string is malformed.
func (s *RecurringSchedule) DurationMinutes() (int, error) {
	start, err := MinutesOfClock(s.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := MinutesOfClock(s.EndTime)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// Overlaps reports whether two rules on the same day share any minute.
func (s *RecurringSchedule) Overlaps(other *RecurringSchedule) bool {
	if s.DayOfWeek != other.DayOfWeek {
		return false
	}
	aStart, err1 := MinutesOfClock(s.StartTime)
	aEnd, err2 := MinutesOfClock(s.EndTime)
	bStart, err3 := MinutesOfClock(other.StartTime)
	bEnd, err4 := MinutesOfClock(other.EndTime)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}
