package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/nyagah254/job_board/handlers"
	"github.com/nyagah254/job_board/middleware"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chat := api.Group("/chat", middleware.Protected())
	chat.Get("", handlers.GetMessages)
	chat.Post("", handlers.SendMessage)
	chat.Get("/conversations", handlers.GetConversations)
	chat.Post("/conversations", handlers.CreateConversation)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
