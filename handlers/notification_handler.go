package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
)

func GetNotifications(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	var notifications []models.Notification
	if err := database.DB.
		Where("user_email = ?", email).
		Order("created_at desc").
		Limit(100).
		Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}

	var unreadCount int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Count(&unreadCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)
	notificationID := c.Params("notificationId")

	if err := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_email = ?", notificationID, email).
		Update("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notification"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	email := claims["email"].(string)

	if err := database.DB.Model(&models.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Update("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update notifications"})
	}

	return c.JSON(fiber.Map{"success": true})
}
