package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
)

type JobRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
}

func SearchJobs(c *fiber.Ctx) error {
	search := c.Query("search")

	var jobs []models.Job
	q := database.DB.Order("created_at desc")
	if search != "" {
		// LOWER on both sides keeps the match case-insensitive on
		// postgres, where LIKE is case-sensitive.
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch jobs"})
	}

	return c.JSON(fiber.Map{"job": jobs})
}

func GetJob(c *fiber.Ctx) error {
	jobID := c.Params("jobId")

	var job models.Job
	if err := database.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}
	return c.JSON(fiber.Map{"job": job})
}

func CreateJob(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var req JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job := models.Job{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Description: req.Description,
		OwnerEmail:  email,
	}
	if err := database.DB.Create(&job).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create job"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func ListEmployerJobs(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var jobs []models.Job
	if err := database.DB.Where("owner_email = ?", email).Order("created_at desc").Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch jobs"})
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

func UpdateJob(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)
	jobID := c.Params("jobId")

	var job models.Job
	if err := database.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}
	if job.OwnerEmail != email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this job posting"})
	}

	var req JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job.Title = req.Title
	job.Company = req.Company
	job.Location = req.Location
	job.Salary = req.Salary
	job.Description = req.Description
	if err := database.DB.Save(&job).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update job"})
	}

	return c.JSON(fiber.Map{"job": job})
}

func DeleteJob(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)
	jobID := c.Params("jobId")

	var job models.Job
	if err := database.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	}
	if job.OwnerEmail != email {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this job posting"})
	}

	if err := database.DB.Delete(&job).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete job"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
