package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
)

// SearchUsers finds users by name or email, used when starting a new
// conversation.
func SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Search query required"})
	}

	type userHit struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	var users []userHit
	pattern := "%" + query + "%"
	if err := database.DB.Model(&models.User{}).
		Select("id, name, email").
		Where("name LIKE ? OR email LIKE ?", pattern, pattern).
		Limit(10).
		Scan(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search users"})
	}

	return c.JSON(fiber.Map{"users": users})
}

func GetMyUserID(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	return c.JSON(fiber.Map{"userId": claims["user_id"]})
}
