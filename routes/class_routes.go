package routes

import (
	"github.com/manelteacher/spanish_classes/handlers"
	"github.com/manelteacher/spanish_classes/middleware"
	"github.com/gofiber/fiber/v2"
)

func ClassRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	classes := api.Group("/teacher/classes", middleware.Protected(), middleware.TeacherRequired())
	classes.Post("", handlers.CreateClass)
	classes.Patch("/:id", handlers.UpdateClass)
	classes.Delete("/:id", handlers.DeleteClass)
}
