package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nyagah254/job_board/handlers"
	"github.com/nyagah254/job_board/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile/me", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Post("", handlers.UpsertProfile)

	users := api.Group("/users", middleware.Protected())
	users.Get("/search", handlers.SearchUsers)
	users.Get("/me/id", handlers.GetMyUserID)
}
