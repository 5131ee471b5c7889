package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoomID   uuid.UUID `gorm:"not null" json:"room_id"`
	SenderID uuid.UUID `gorm:"not null" json:"sender_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	IsRead   bool      `gorm:"not null;default:false" json:"is_read"`

	Sender User     `gorm:"foreignkey:SenderID" json:"sender,omitempty"`
	Room   ChatRoom `gorm:"foreignkey:RoomID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
