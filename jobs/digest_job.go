package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
	"github.com/nyagah254/job_board/notifications"
)

// SendNotificationDigests emails users who accumulated unread
// notifications in the last half hour, so application outcomes do not
// sit unseen between visits.
func SendNotificationDigests() {
	log.Println("Running job: SendNotificationDigests...")

	since := time.Now().Add(-30 * time.Minute)

	type digestRow struct {
		UserEmail string
		Unread    int
	}

	var rows []digestRow
	err := database.DB.Model(&models.Notification{}).
		Select("user_email, COUNT(*) AS unread").
		Where("is_read = ? AND created_at >= ?", false, since).
		Group("user_email").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error collecting notification digests: %v", err)
		return
	}

	if len(rows) == 0 {
		return
	}

	for _, row := range rows {
		var user models.User
		if err := database.DB.Where("email = ?", row.UserEmail).First(&user).Error; err != nil {
			continue
		}

		subject := "You have new activity on your applications"
		body := fmt.Sprintf(
			"<h1>New Activity</h1><p>Hi %s,</p><p>You have %d unread notification(s) waiting for you. Log in to see the latest updates on your applications.</p>",
			user.Name, row.Unread,
		)
		go notifications.SendEmail(user.Name, user.Email, subject, body)
	}

	log.Printf("Queued digest emails for %d user(s).", len(rows))
}
