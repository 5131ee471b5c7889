package models

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"not null;unique" json:"user_id"`

	Items []CartItem `gorm:"foreignkey:CartID" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID          uuid.UUID `gorm:"not null;uniqueIndex:idx_cart_duration" json:"-"`
	DurationMinutes Duration  `gorm:"not null;uniqueIndex:idx_cart_duration" json:"duration_minutes"`
	Quantity        int       `gorm:"not null;default:1" json:"quantity"`
}

func (i *CartItem) UnitPriceEUR() int { return i.DurationMinutes.UnitPriceEUR() }

func (i *CartItem) SubtotalEUR() int { return i.UnitPriceEUR() * i.Quantity }

func (c *Cart) TotalEUR() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].SubtotalEUR()
	}
	return total
}

func (c *Cart) TotalQuantity() int {
	qty := 0
	for i := range c.Items {
		qty += c.Items[i].Quantity
	}
	return qty
}
