package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchJobStatus string

const (
	StatusQueued     MatchJobStatus = "queued"
	StatusProcessing MatchJobStatus = "processing"
	StatusCompleted  MatchJobStatus = "completed"
	StatusFailed     MatchJobStatus = "failed"
)

// PoolMatchResult is one candidate's score against the job description
// of a pool match run.
type PoolMatchResult struct {
	CandidateID    string   `json:"candidate_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	ResumeFilename string   `json:"resume_filename"`
	MatchScore     float64  `json:"match_score"`
	SuccessRate    float64  `json:"success_rate"`
	MatchedSkills  []string `json:"matched_skills"`
}

// MatchJob is an asynchronous company-side matching run: one job
// description scored against the whole candidate pool.
type MatchJob struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ActorEmail   string            `gorm:"type:text;not null;index" json:"actor_email"`
	JobText      string            `gorm:"type:text;not null" json:"-"`
	Status       MatchJobStatus    `gorm:"not null;default:'queued'" json:"status"`
	JobSkills    []string          `gorm:"serializer:json;type:jsonb" json:"job_skills,omitempty"`
	Results      []PoolMatchResult `gorm:"serializer:json;type:jsonb" json:"results,omitempty"`
	ErrorMessage *string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MatchJob) TableName() string {
	return "match_jobs"
}
