package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is append-only except for the is_read flag.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserEmail   string    `gorm:"size:255;not null;index" json:"user_email"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Type        string    `gorm:"size:50;not null;default:'general'" json:"type"`
	JobTitle    *string   `gorm:"size:255" json:"job_title"`
	CompanyName *string   `gorm:"size:255" json:"company_name"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
