package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nyagah254/job_board/handlers"
	"github.com/nyagah254/job_board/middleware"
)

func JobRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	jobs := api.Group("/jobs")
	jobs.Get("", handlers.SearchJobs)
	jobs.Get("/mine", middleware.Protected(), middleware.EmployerRequired(), handlers.ListEmployerJobs)
	jobs.Get("/:jobId", handlers.GetJob)
	jobs.Post("", middleware.Protected(), middleware.EmployerRequired(), handlers.CreateJob)
	jobs.Put("/:jobId", middleware.Protected(), middleware.EmployerRequired(), handlers.UpdateJob)
	jobs.Delete("/:jobId", middleware.Protected(), middleware.EmployerRequired(), handlers.DeleteJob)
}
