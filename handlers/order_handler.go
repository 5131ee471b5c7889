package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/manelteacher/spanish_classes/notifications"
	"github.com/manelteacher/spanish_classes/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"gorm.io/gorm"
)

// CreateOrderFromCart snapshots the caller's cart into a pending order, opens
// a Stripe Checkout Session for it and empties the cart. The order keeps its
// own copy of the line items so later price changes never affect it.
func CreateOrderFromCart(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve cart"})
	}
	if len(cart.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cart is empty"})
	}

	lineItems := make([]models.OrderItem, 0, len(cart.Items))
	for i := range cart.Items {
		it := &cart.Items[i]
		lineItems = append(lineItems, models.OrderItem{
			DurationMinutes: it.DurationMinutes.Minutes(),
			Quantity:        it.Quantity,
			UnitPriceEUR:    it.UnitPriceEUR(),
		})
	}
	encoded, err := models.EncodeOrderItems(lineItems)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	order := models.Order{
		UserID:   userID,
		Items:    encoded,
		TotalEUR: models.TotalOfItems(lineItems),
		Status:   models.OrderPending,
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	session, err := payments.CreateCheckoutSession(&order, lineItems, user.Email)
	if err != nil {
		log.Printf("🔥 Stripe session creation failed for order %s: %v", order.ID, err)
		database.DB.Model(&order).Update("status", models.OrderFailed)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Payment provider unavailable"})
	}

	order.StripeSessionID = &session.ID
	if err := database.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	if err := database.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		log.Printf("🔥 Failed to clear cart %s after checkout: %v", cart.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":     order.ID,
		"total_eur":    order.TotalEUR,
		"checkout_url": session.URL,
	})
}

// completeOrder credits the order's line items to the buyer and stamps the
// order completed. Only a pending order transitions; replays and duplicate
// webhook deliveries are no-ops.
func completeOrder(orderID uuid.UUID) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		if !order.CanComplete() {
			return nil
		}

		items, err := order.LineItems()
		if err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", order.UserID).Error; err != nil {
			return err
		}
		for _, it := range items {
			duration, err := models.ParseDuration(it.DurationMinutes)
			if err != nil {
				return err
			}
			user.CreditClasses(duration, it.Quantity)
		}
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		order.Status = models.OrderCompleted
		order.CompletedAt = &now
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		go notifications.SendEmail(
			user.Username,
			user.Email,
			"Payment received",
			"<p>Your payment was received and your class credits have been added to your account.</p>",
		)
		return nil
	})
}

// closeOrder moves a pending order to a terminal non-paid status. Completed
// orders are never demoted.
func closeOrder(orderID uuid.UUID, status string) error {
	return database.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.OrderPending).
		Update("status", status).Error
}

// webhookOrderStatus maps a checkout session notification to the order status
// it should produce. A completed session only completes the order when the
// session was actually paid; anything else fails it.
func webhookOrderStatus(eventType string, paid bool) string {
	switch eventType {
	case "checkout.session.completed":
		if paid {
			return models.OrderCompleted
		}
		return models.OrderFailed
	case "checkout.session.expired":
		return models.OrderCancelled
	}
	return models.OrderFailed
}

// HandleStripeWebhook processes Stripe's asynchronous payment notifications.
// The signature is verified before anything is trusted; unrecognized event
// types are acknowledged and ignored.
func HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := payments.ConstructWebhookEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("🔥 Stripe webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	switch string(event.Type) {
	case "checkout.session.completed", "checkout.session.expired", "checkout.session.async_payment_failed":
	default:
		return c.SendStatus(fiber.StatusOK)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Malformed event payload"})
	}
	orderID, err := uuid.Parse(session.Metadata["order_id"])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing order metadata"})
	}

	paid := session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
	switch webhookOrderStatus(string(event.Type), paid) {
	case models.OrderCompleted:
		err = completeOrder(orderID)
	case models.OrderCancelled:
		err = closeOrder(orderID, models.OrderCancelled)
	default:
		err = closeOrder(orderID, models.OrderFailed)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		log.Printf("🔥 Failed to process webhook for order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process event"})
	}

	return c.SendStatus(fiber.StatusOK)
}

// VerifyPayment re-checks an order's Stripe session on demand, so a buyer
// returning from checkout sees credits even if the webhook is delayed.
func VerifyPayment(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if order.Status == models.OrderPending && order.StripeSessionID != nil {
		session, err := payments.RetrieveCheckoutSession(*order.StripeSessionID)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Payment provider unavailable"})
		}
		if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			if err := completeOrder(order.ID); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete order"})
			}
		} else if session.Status == stripe.CheckoutSessionStatusExpired {
			if err := closeOrder(order.ID, models.OrderCancelled); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update order"})
			}
		}
		database.DB.First(&order, "id = ?", order.ID)
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve balances"})
	}

	return c.JSON(fiber.Map{
		"order": order,
		"balances": fiber.Map{
			"25min": user.Balance25Min,
			"50min": user.Balance50Min,
			"80min": user.Balance80Min,
		},
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var orders []models.Order
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve orders"})
	}

	return c.JSON(orders)
}
