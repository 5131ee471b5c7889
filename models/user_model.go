package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username string    `gorm:"size:150;not null;unique" json:"username"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`
	Country  string    `gorm:"size:2;not null;default:'ES'" json:"country"`

	// TimeZone is derived from Country when the record is saved and cached
	// here; it is never re-derived per request.
	TimeZone string `gorm:"size:50;not null;default:'UTC'" json:"timezone"`

	Balance25Min int `gorm:"not null;default:0" json:"balance_25min"`
	Balance50Min int `gorm:"not null;default:0" json:"balance_50min"`
	Balance80Min int `gorm:"not null;default:0" json:"balance_80min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) bucket(d Duration) *int {
	switch d {
	case Duration25:
		return &u.Balance25Min
	case Duration50:
		return &u.Balance50Min
	case Duration80:
		return &u.Balance80Min
	}
	return nil
}

// BalanceFor returns the credit count for the given duration bucket.
func (u *User) BalanceFor(d Duration) int {
	if b := u.bucket(d); b != nil {
		return *b
	}
	return 0
}

// CreditClasses adds qty credits to the matching bucket.
func (u *User) CreditClasses(d Duration, qty int) {
	if b := u.bucket(d); b != nil {
		*b += qty
	}
}

// DebitClass removes one credit from the matching bucket. The debit is
// rejected, not clamped, when the bucket is empty.
func (u *User) DebitClass(d Duration) error {
	b := u.bucket(d)
	if b == nil || *b <= 0 {
		return &InsufficientBalanceError{Duration: d}
	}
	*b--
	return nil
}

// TotalBalance sums all three buckets.
func (u *User) TotalBalance() int {
	return u.Balance25Min + u.Balance50Min + u.Balance80Min
}

// Location resolves the cached IANA timezone, falling back to UTC if the name
// does not load.
func (u *User) Location() *time.Location {
	loc, err := time.LoadLocation(u.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
