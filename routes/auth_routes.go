package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nyagah254/job_board/handlers"
	"github.com/nyagah254/job_board/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/login", handlers.Login)
	auth.Post("/logout", handlers.Logout)
	auth.Post("/change-password", middleware.Protected(), handlers.ChangePassword)
}
