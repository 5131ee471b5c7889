package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{DurationMinutes: Duration25, Quantity: 2},
		{DurationMinutes: Duration50, Quantity: 1},
		{DurationMinutes: Duration80, Quantity: 3},
	}}

	assert.Equal(t, 2*6+1*12+3*16, cart.TotalEUR())
	assert.Equal(t, 6, cart.TotalQuantity())
}

func TestEmptyCartTotals(t *testing.T) {
	var cart Cart
	assert.Equal(t, 0, cart.TotalEUR())
	assert.Equal(t, 0, cart.TotalQuantity())
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{DurationMinutes: Duration50, Quantity: 4}
	assert.Equal(t, 12, item.UnitPriceEUR())
	assert.Equal(t, 48, item.SubtotalEUR())
}
