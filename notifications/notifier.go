package notifications

import (
	"log"

	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
)

// NotifyParams describes one in-app notification for a user, optionally
// tied to a job posting.
type NotifyParams struct {
	Email       string
	Message     string
	Type        string
	JobTitle    *string
	CompanyName *string
}

// Notify appends a notification row for the recipient. The feed is
// append-only; delivery happens when the recipient next polls.
func Notify(p NotifyParams) error {
	if p.Type == "" {
		p.Type = "general"
	}

	notification := models.Notification{
		UserEmail:   p.Email,
		Message:     p.Message,
		Type:        p.Type,
		JobTitle:    p.JobTitle,
		CompanyName: p.CompanyName,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("🔥 Failed to create notification for %s: %v", p.Email, err)
		return err
	}
	return nil
}
