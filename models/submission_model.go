package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is one graded attempt at a quiz. A user may submit the same
// quiz more than once; each submit creates an independent row.
type Submission struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	SubmittedAt    time.Time `gorm:"autoCreateTime" json:"submitted_at"`

	User    User     `gorm:"foreignkey:UserID" json:"-"`
	Answers []Answer `gorm:"foreignkey:SubmissionID" json:"answers,omitempty"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
