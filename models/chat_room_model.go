package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatRoom struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_room_pair" json:"student_id"`
	TeacherID uuid.UUID `gorm:"not null;uniqueIndex:idx_room_pair" json:"teacher_id"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ChatRoom) HasParticipant(userID uuid.UUID) bool {
	return r.StudentID == userID || r.TeacherID == userID
}

// CounterpartOf returns the other participant of the room.
func (r *ChatRoom) CounterpartOf(userID uuid.UUID) uuid.UUID {
	if r.StudentID == userID {
		return r.TeacherID
	}
	return r.StudentID
}
