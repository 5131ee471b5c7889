package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItemSnapshotRoundTrip(t *testing.T) {
	items := []OrderItem{
		{DurationMinutes: 25, Quantity: 2, UnitPriceEUR: 6},
		{DurationMinutes: 80, Quantity: 1, UnitPriceEUR: 16},
	}

	encoded, err := EncodeOrderItems(items)
	require.NoError(t, err)

	order := Order{Items: encoded}
	decoded, err := order.LineItems()
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestTotalOfItems(t *testing.T) {
	items := []OrderItem{
		{DurationMinutes: 25, Quantity: 2, UnitPriceEUR: 6},
		{DurationMinutes: 50, Quantity: 3, UnitPriceEUR: 12},
	}
	assert.Equal(t, 48, TotalOfItems(items))
	assert.Equal(t, 0, TotalOfItems(nil))
}

func TestCanCompleteOnlyFromPending(t *testing.T) {
	assert.True(t, (&Order{Status: OrderPending}).CanComplete())

	// A second completion attempt for the same order must be a no-op.
	for _, status := range []string{OrderCompleted, OrderFailed, OrderCancelled} {
		assert.False(t, (&Order{Status: status}).CanComplete(), "CanComplete(%s)", status)
	}
}

func TestLineItemsRejectsMalformedSnapshot(t *testing.T) {
	order := Order{Items: []byte("not json")}
	_, err := order.LineItems()
	assert.Error(t, err)
}
