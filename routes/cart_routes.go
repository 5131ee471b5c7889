package routes

import (
	"github.com/manelteacher/spanish_classes/handlers"
	"github.com/manelteacher/spanish_classes/middleware"
	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	cart := api.Group("/cart", middleware.Protected(), middleware.StudentRequired())
	cart.Get("", handlers.GetMyCart)
	cart.Post("/items", handlers.AddCartItem)
	cart.Patch("/items/:itemId", handlers.UpdateCartItem)
	cart.Delete("/items/:itemId", handlers.RemoveCartItem)
	cart.Delete("", handlers.ClearCart)
}
