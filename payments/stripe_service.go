package payments

import (
	"fmt"
	"log"

	config "github.com/manelteacher/spanish_classes/configs"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

func InitStripe() {
	stripe.Key = config.Config("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY not set, checkout will fail")
		return
	}
	log.Println("✅ Stripe client initialized")
}

// CreateCheckoutSession opens a Stripe Checkout Session for an order. Line
// items are priced from the order's immutable snapshot; the order id travels
// in the session metadata so the webhook can map the session back.
func CreateCheckoutSession(order *models.Order, items []models.OrderItem, customerEmail string) (*stripe.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyEUR)),
				UnitAmount: stripe.Int64(int64(it.UnitPriceEUR) * 100),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("%d-minute class credit", it.DurationMinutes)),
				},
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(config.Config("CHECKOUT_SUCCESS_URL")),
		CancelURL:          stripe.String(config.Config("CHECKOUT_CANCEL_URL")),
		CustomerEmail:      stripe.String(customerEmail),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("user_id", order.UserID.String())

	return session.New(params)
}

// RetrieveCheckoutSession fetches a session by its opaque identifier.
func RetrieveCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	return session.Get(sessionID, nil)
}

// ConstructWebhookEvent verifies the Stripe signature header and decodes the
// webhook payload.
func ConstructWebhookEvent(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, config.Config("STRIPE_WEBHOOK_SECRET"))
}
