package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer snapshots the correctness of one selected option at submit time,
// so later edits to the quiz cannot rewrite history.
type Answer struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	QuestionID   uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	OptionID     uuid.UUID `gorm:"type:uuid;not null" json:"option_id"`
	IsCorrect    bool      `gorm:"not null" json:"is_correct"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
