package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
	"github.com/nyagah254/job_board/utils"
)

const defaultAvatarPath = "/uploads/default-avatar.png"

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var profile models.Profile
	if err := database.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

// UpsertProfile creates or updates the caller's profile from a
// multipart form; an optional photo lands under uploads/photos.
func UpsertProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	fullName := c.FormValue("full_name")
	if fullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Full name is required"})
	}

	photoPath := defaultAvatarPath
	if photoFile, err := c.FormFile("photo"); err == nil {
		saved, err := utils.SaveUpload(c, photoFile, "photos", email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo"})
		}
		photoPath = saved
	}

	var profile models.Profile
	err := database.DB.Where("email = ?", email).First(&profile).Error

	profile.Email = email
	profile.FullName = fullName
	profile.Skills = c.FormValue("skills")
	profile.Course = c.FormValue("course")
	profile.College = c.FormValue("college")
	profile.TenthPercent = c.FormValue("tenth_percent")
	profile.TwelfthPercent = c.FormValue("twelfth_percent")
	profile.GithubID = c.FormValue("github_id")
	if photoPath != defaultAvatarPath || profile.Photo == "" {
		profile.Photo = photoPath
	}

	if err != nil {
		err = database.DB.Create(&profile).Error
	} else {
		err = database.DB.Save(&profile).Error
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save profile"})
	}

	return c.JSON(fiber.Map{"success": true, "photo": profile.Photo})
}
