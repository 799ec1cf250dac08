package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	EmployerID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"employer_id"`
	JobID       *uuid.UUID `gorm:"type:uuid;index" json:"job_id"`

	Questions []Question `gorm:"foreignkey:QuizID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
