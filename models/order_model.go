package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderFailed    = "failed"
	OrderCancelled = "cancelled"
)

// OrderItem is one line of the immutable item snapshot stored on an order.
type OrderItem struct {
	DurationMinutes int `json:"duration_minutes"`
	Quantity        int `json:"quantity"`
	UnitPriceEUR    int `json:"unit_price"`
}

type Order struct {
	ID       uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID      `gorm:"not null" json:"user_id"`
	Items    datatypes.JSON `gorm:"not null" json:"items"`
	TotalEUR int            `gorm:"not null" json:"total_eur"`
	Status   string         `gorm:"size:20;not null;default:'pending'" json:"status"`

	StripeSessionID *string `gorm:"size:100;uniqueIndex" json:"-"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// CanComplete guards order completion: only a pending order may be credited,
// so replayed payment notifications are no-ops.
func (o *Order) CanComplete() bool {
	return o.Status == OrderPending
}

// LineItems decodes the stored item snapshot.
func (o *Order) LineItems() ([]OrderItem, error) {
	var items []OrderItem
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// EncodeOrderItems serializes line items for the Items column.
func EncodeOrderItems(items []OrderItem) (datatypes.JSON, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// TotalOfItems computes Σ unit_price × quantity over a line item set.
func TotalOfItems(items []OrderItem) int {
	total := 0
	for _, it := range items {
		total += it.UnitPriceEUR * it.Quantity
	}
	return total
}
