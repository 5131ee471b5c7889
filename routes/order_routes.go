package routes

import (
	"github.com/manelteacher/spanish_classes/handlers"
	"github.com/manelteacher/spanish_classes/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	orders := api.Group("/orders", middleware.Protected(), middleware.StudentRequired())
	orders.Get("", handlers.GetMyOrders)
	orders.Post("/checkout", handlers.CreateOrderFromCart)
	orders.Get("/:id/verify", handlers.VerifyPayment)

	// Stripe authenticates itself through the signature header.
	api.Post("/webhooks/stripe", handlers.HandleStripeWebhook)
}
