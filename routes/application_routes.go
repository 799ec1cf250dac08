package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nyagah254/job_board/handlers"
	"github.com/nyagah254/job_board/middleware"
)

func ApplicationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	applications := api.Group("/applications", middleware.Protected())
	applications.Post("", middleware.JobSeekerRequired(), handlers.ApplyToJob)
	applications.Get("/mine", middleware.JobSeekerRequired(), handlers.ListMyApplications)
	applications.Get("", middleware.EmployerRequired(), handlers.ListEmployerApplications)
	applications.Post("/:applicationId", middleware.EmployerRequired(), handlers.UpdateApplicationStatus)
}
