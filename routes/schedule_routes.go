package routes

import (
	"github.com/manelteacher/spanish_classes/handlers"
	"github.com/manelteacher/spanish_classes/middleware"
	"github.com/gofiber/fiber/v2"
)

func ScheduleRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	schedules := api.Group("/teacher/schedules", middleware.Protected(), middleware.TeacherRequired())
	schedules.Get("", handlers.GetMySchedules)
	schedules.Get("/availability", handlers.GetMyAvailability)
	schedules.Post("", handlers.CreateSchedule)
	schedules.Patch("/:id", handlers.UpdateSchedule)
	schedules.Delete("/:id", handlers.DeleteSchedule)

	api.Get("/teachers/:teacherId/availability", middleware.Protected(), handlers.GetTeacherAvailability)
}
