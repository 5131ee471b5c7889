package handlers

import (
	"testing"

	"github.com/manelteacher/spanish_classes/models"
	"github.com/stretchr/testify/assert"
)

func TestWebhookOrderStatus(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		paid      bool
		want      string
	}{
		{"completed and paid", "checkout.session.completed", true, models.OrderCompleted},
		{"completed but unpaid", "checkout.session.completed", false, models.OrderFailed},
		{"expired", "checkout.session.expired", false, models.OrderCancelled},
		{"async payment failed", "checkout.session.async_payment_failed", false, models.OrderFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webhookOrderStatus(tt.eventType, tt.paid))
		})
	}
}
