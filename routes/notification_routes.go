package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nyagah254/job_board/handlers"
	"github.com/nyagah254/job_board/middleware"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("", handlers.GetNotifications)
	notifications.Put("", handlers.MarkAllNotificationsRead)
	notifications.Put("/:notificationId", handlers.MarkNotificationRead)
}
