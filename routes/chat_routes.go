package routes

import (
	"github.com/manelteacher/spanish_classes/handlers"
	"github.com/manelteacher/spanish_classes/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chats := api.Group("/chats", middleware.Protected())
	chats.Get("", handlers.GetMyChats)
	chats.Post("", middleware.StudentRequired(), handlers.StartChat)
	chats.Get("/:roomId/messages", handlers.GetRoomMessages)
	chats.Post("/:roomId/messages", handlers.SendMessage)
	chats.Post("/:roomId/read", handlers.MarkMessagesRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
