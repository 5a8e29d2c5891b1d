package models

import (
	"time"

	"github.com/google/uuid"
)

// ComparisonRecord is one scored job/resume pair, written after every
// comparison. Records are append-only: they are created once, listed
// newest first per actor, and deleted by their owner. No update path
// exists.
type ComparisonRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ActorEmail    string    `gorm:"type:text;not null;index" json:"actor_email"`
	JobExcerpt    string    `gorm:"type:text" json:"job_excerpt"`
	ResumeID      uuid.UUID `gorm:"type:uuid;not null" json:"resume_id"`
	JobSkills     []string  `gorm:"serializer:json;type:jsonb" json:"job_skills"`
	MatchedSkills []string  `gorm:"serializer:json;type:jsonb" json:"matched_skills"`
	MatchScore    float64   `gorm:"type:decimal(5,1)" json:"match_score"`
	SuccessRate   float64   `gorm:"type:decimal(5,1)" json:"success_rate"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (r *ComparisonRecord) TableName() string {
	return "comparison_records"
}
