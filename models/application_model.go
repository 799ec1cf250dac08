package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application ties a job seeker (by email, matching the session identity
// cookie) to a job posting. Re-applying to the same job is allowed.
type Application struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ApplicantEmail string    `gorm:"size:255;not null;index" json:"applicant_email"`
	JobID          uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	JobTitle       string    `gorm:"size:255" json:"job_title"`
	CompanyName    string    `gorm:"size:255" json:"company_name"`
	ResumePath     string    `gorm:"size:255;not null" json:"resume_path"`
	Status         string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	AppliedAt      time.Time `gorm:"autoCreateTime" json:"applied_at"`

	Job Job `gorm:"foreignkey:JobID" json:"-"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = ApplicationPending
	}
	return nil
}
