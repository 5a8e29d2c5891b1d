package models

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is one uploaded resume plus everything derived from it at
// upload time. Skills and the text snapshot are computed once and reused
// for every later comparison.
type Candidate struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email            string    `gorm:"type:text;not null;index" json:"email"`
	Name             string    `gorm:"type:text" json:"name"`
	ResumeFilename   string    `gorm:"type:text" json:"resume_filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"-"`
	ResumeText       string    `gorm:"type:text" json:"-"`
	Skills           []string  `gorm:"serializer:json;type:jsonb" json:"skills"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *Candidate) TableName() string {
	return "candidates"
}
