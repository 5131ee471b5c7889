package routes

import (
	"github.com/manelteacher/spanish_classes/handlers"
	"github.com/manelteacher/spanish_classes/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Get("/me", handlers.GetMyBookings)
	bookings.Post("", handlers.CreateBooking)
	bookings.Post("/:id/cancel", handlers.CancelBooking)
	bookings.Post("/:id/reschedule", handlers.RescheduleBooking)

	teacherBookings := api.Group("/teacher/bookings", middleware.Protected(), middleware.TeacherRequired())
	teacherBookings.Post("/:id/status", handlers.ChangeBookingStatus)
}
