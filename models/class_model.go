package models

import (
	"time"

	"github.com/google/uuid"
)

type Class struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID       uuid.UUID `gorm:"not null" json:"teacher_id"`
	Title           string    `gorm:"size:100;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	DurationMinutes Duration  `gorm:"not null;default:50" json:"duration_minutes"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
