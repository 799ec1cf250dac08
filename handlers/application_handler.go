package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
	"github.com/nyagah254/job_board/notifications"
	"github.com/nyagah254/job_board/utils"
)

// ApplicationView is one row of the employer's applicant list, joined
// with the applicant's name and any quiz attached to the job.
type ApplicationView struct {
	ID             uuid.UUID  `json:"id"`
	ApplicantEmail string     `json:"applicant_email"`
	ApplicantName  string     `json:"applicant_name"`
	JobID          uuid.UUID  `json:"job_id"`
	JobTitle       string     `json:"job_title"`
	CompanyName    string     `json:"company_name"`
	ResumePath     string     `json:"resume_path"`
	Status         string     `json:"status"`
	AppliedAt      time.Time  `json:"applied_at"`
	QuizID         *uuid.UUID `json:"quiz_id"`
}

func ApplyToJob(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	jobID := c.FormValue("jobId")
	jobTitle := c.FormValue("jobTitle")
	companyName := c.FormValue("companyName")

	resumeFile, err := c.FormFile("resume")
	if jobID == "" || jobTitle == "" || companyName == "" || err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}

	var job models.Job
	if err := database.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}

	resumeURL, err := utils.SaveUpload(c, resumeFile, "resumes", email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store resume"})
	}

	application := models.Application{
		ApplicantEmail: email,
		JobID:          job.ID,
		JobTitle:       jobTitle,
		CompanyName:    companyName,
		ResumePath:     resumeURL,
	}
	if err := database.DB.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit application"})
	}

	return c.JSON(fiber.Map{
		"message":   "Application submitted successfully",
		"resumeUrl": resumeURL,
	})
}

func ListEmployerApplications(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var applications []ApplicationView
	err := database.DB.Model(&models.Application{}).
		Select(`applications.id, applications.applicant_email, users.name AS applicant_name,
			applications.job_id, applications.job_title, applications.company_name,
			applications.resume_path, applications.status, applications.applied_at,
			quizzes.id AS quiz_id`).
		Joins("JOIN jobs ON applications.job_id = jobs.id").
		Joins("JOIN users ON applications.applicant_email = users.email").
		Joins("LEFT JOIN quizzes ON quizzes.job_id = jobs.id").
		Where("jobs.owner_email = ?", email).
		Order("applications.applied_at desc").
		Scan(&applications).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}

	return c.JSON(fiber.Map{"applications": applications})
}

func ListMyApplications(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var applications []models.Application
	if err := database.DB.Where("applicant_email = ?", email).
		Order("applied_at desc").
		Find(&applications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}

	return c.JSON(fiber.Map{"applications": applications})
}

func UpdateApplicationStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)
	applicationID := c.Params("applicationId")

	type Request struct {
		Action string `json:"action" validate:"required,oneof=accepted rejected"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var application models.Application
	if err := database.DB.Preload("Job").First(&application, "id = ?", applicationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	if application.Job.OwnerEmail != email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own the job for this application"})
	}

	application.Status = req.Action
	if err := database.DB.Save(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application"})
	}

	message := "Congratulations! Your application has been shortlisted."
	if req.Action == models.ApplicationRejected {
		message = "Thank you for applying. Your application was not successful this time."
	}

	// Notification failure must not undo the status change.
	_ = notifications.Notify(notifications.NotifyParams{
		Email:       application.ApplicantEmail,
		Message:     message,
		Type:        "application_" + req.Action,
		JobTitle:    &application.Job.Title,
		CompanyName: &application.Job.Company,
	})

	var applicant models.User
	if err := database.DB.Where("email = ?", application.ApplicantEmail).First(&applicant).Error; err == nil {
		subject := fmt.Sprintf("Update on your application to %s", application.Job.Company)
		go notifications.SendEmail(applicant.Name, applicant.Email, subject, "<p>"+message+"</p>")
	}

	return c.JSON(fiber.Map{"message": "Status updated"})
}
