package routes

import (
	"github.com/manelteacher/spanish_classes/handlers"
	"github.com/gofiber/fiber/v2"
)

// PublicRoutes exposes the unauthenticated catalog endpoints.
func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/prices", handlers.ListPrices)
	api.Get("/countries", handlers.ListCountries)
	api.Get("/timezones", handlers.ListTimezones)
	api.Get("/teachers", handlers.ListTeachers)
	api.Get("/classes", handlers.ListClasses)
	api.Get("/classes/:id", handlers.GetClass)
}
