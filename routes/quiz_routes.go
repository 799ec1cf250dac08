package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nyagah254/job_board/handlers"
	"github.com/nyagah254/job_board/middleware"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	quizzes := api.Group("/quizzes", middleware.Protected())
	quizzes.Post("", middleware.EmployerRequired(), handlers.CreateQuiz)
	quizzes.Get("", middleware.EmployerRequired(), handlers.ListEmployerQuizzes)
	quizzes.Get("/results/:quizId", middleware.EmployerRequired(), handlers.GetQuizResults)
	quizzes.Get("/results/:quizId/export", middleware.EmployerRequired(), handlers.ExportQuizResults)
	quizzes.Get("/available", middleware.JobSeekerRequired(), handlers.ListAvailableQuizzes)
	quizzes.Get("/:quizId", handlers.GetQuiz)
	quizzes.Post("/:quizId/submit", handlers.SubmitQuiz)
}
