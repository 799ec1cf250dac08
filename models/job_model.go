package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Company     string    `gorm:"size:255;not null" json:"company"`
	Location    string    `gorm:"size:255" json:"location"`
	Salary      string    `gorm:"size:100" json:"salary"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerEmail  string    `gorm:"size:255;not null;index" json:"owner_email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
