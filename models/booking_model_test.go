package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnlyLiveBookingsOccupyASlot(t *testing.T) {
	assert.Equal(t, []string{BookingPending, BookingAccepted}, LiveStatuses())

	// A released booking is kept for history but must not block re-booking
	// the same (class, start) slot.
	for _, status := range []string{BookingRejected, BookingCancelled, BookingCompleted, BookingValidated} {
		b := Booking{Status: status}
		assert.False(t, b.IsLive(), "IsLive(%s)", status)
		assert.NotContains(t, LiveStatuses(), status)
	}
	for _, status := range LiveStatuses() {
		b := Booking{Status: status}
		assert.True(t, b.IsLive(), "IsLive(%s)", status)
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{BookingPending, BookingAccepted, true},
		{BookingPending, BookingRejected, true},
		{BookingPending, BookingCompleted, false},
		{BookingAccepted, BookingCompleted, true},
		{BookingAccepted, BookingRejected, true},
		{BookingAccepted, BookingValidated, false},
		{BookingCompleted, BookingValidated, true},
		{BookingCompleted, BookingRejected, false},
		{BookingRejected, BookingAccepted, false},
		{BookingValidated, BookingRejected, false},
		{BookingCancelled, BookingAccepted, false},
	}

	for _, tt := range tests {
		b := Booking{Status: tt.from}
		assert.Equal(t, tt.want, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRejectionFromAcceptedRefunds(t *testing.T) {
	b := Booking{Status: BookingAccepted}
	assert.True(t, b.CanTransitionTo(BookingRejected))
	assert.True(t, b.RefundsOnRelease())
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		status        string
		terminal      bool
		cancellable   bool
		reschedulable bool
		refunds       bool
	}{
		{BookingPending, false, true, true, true},
		{BookingAccepted, false, true, false, true},
		{BookingRejected, false, true, false, false},
		{BookingCompleted, true, false, false, false},
		{BookingValidated, true, false, false, false},
		{BookingCancelled, true, false, false, false},
	}

	for _, tt := range tests {
		b := Booking{Status: tt.status}
		assert.Equal(t, tt.terminal, b.IsTerminal(), "IsTerminal(%s)", tt.status)
		assert.Equal(t, tt.cancellable, b.CanBeCancelled(), "CanBeCancelled(%s)", tt.status)
		assert.Equal(t, tt.reschedulable, b.CanBeRescheduled(), "CanBeRescheduled(%s)", tt.status)
		assert.Equal(t, tt.refunds, b.RefundsOnRelease(), "RefundsOnRelease(%s)", tt.status)
	}
}
