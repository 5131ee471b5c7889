package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
	BookingValidated = "validated"
	BookingCancelled = "cancelled"
)

// Booking rows are kept for history once released; slot contention is
// enforced by a partial unique index on (class_id, start_time) that covers
// only live statuses (created in database.Migrate), so a cancelled or
// rejected booking never blocks re-booking the slot.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClassID   uuid.UUID `gorm:"not null;index:idx_class_start" json:"class_id"`
	StudentID uuid.UUID `gorm:"not null" json:"student_id"`
	StartTime time.Time `gorm:"not null;index:idx_class_start" json:"start_time_utc"`
	EndTime   time.Time `gorm:"not null" json:"end_time_utc"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	TeacherComment *string `gorm:"type:text" json:"teacher_comment"`

	Class   Class `gorm:"foreignkey:ClassID" json:"class,omitempty"`
	Student User  `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LiveStatuses are the booking statuses that occupy a slot. Every conflict
// check and the partial unique index use exactly this set.
func LiveStatuses() []string {
	return []string{BookingPending, BookingAccepted}
}

// IsLive reports whether the booking occupies its slot.
func (b *Booking) IsLive() bool {
	return b.Status == BookingPending || b.Status == BookingAccepted
}

// CanTransitionTo reports whether a teacher may move the booking to the given
// status. Rejection is allowed from any live state and refunds the student.
func (b *Booking) CanTransitionTo(status string) bool {
	switch b.Status {
	case BookingPending:
		return status == BookingAccepted || status == BookingRejected
	case BookingAccepted:
		return status == BookingCompleted || status == BookingRejected
	case BookingCompleted:
		return status == BookingValidated
	}
	return false
}

// IsTerminal reports whether no further transition or balance reversal is
// permitted from the current status.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingCompleted, BookingValidated, BookingCancelled:
		return true
	}
	return false
}

// CanBeCancelled allows cancellation from any state except the completed and
// validated terminals.
func (b *Booking) CanBeCancelled() bool {
	return b.Status != BookingCompleted && b.Status != BookingValidated && b.Status != BookingCancelled
}

// CanBeRescheduled restricts in-place date changes to pending bookings.
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == BookingPending
}

// RefundsOnRelease reports whether cancelling or rejecting this booking
// returns the class credit it consumed. Rejected and cancelled bookings have
// already been refunded once.
func (b *Booking) RefundsOnRelease() bool {
	return b.Status == BookingPending || b.Status == BookingAccepted
}
