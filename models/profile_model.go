package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the job seeker's public profile, keyed by the same email
// used for applications.
type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email          string    `gorm:"size:255;not null;unique" json:"email"`
	FullName       string    `gorm:"size:255;not null" json:"full_name"`
	Skills         string    `gorm:"type:text" json:"skills"`
	Course         string    `gorm:"size:255" json:"course"`
	College        string    `gorm:"size:255" json:"college"`
	TenthPercent   string    `gorm:"size:20" json:"tenth_percent"`
	TwelfthPercent string    `gorm:"size:20" json:"twelfth_percent"`
	GithubID       string    `gorm:"size:255" json:"github_id"`
	Photo          string    `gorm:"size:255" json:"photo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
