package models

type UploadResponse struct {
	ID           string   `json:"id"`
	Filename     string   `json:"filename"`
	OriginalName string   `json:"original_name"`
	Skills       []string `json:"skills"`
}

type CompareRequest struct {
	ResumeID       string `json:"resume_id" validate:"required,uuid"`
	JobDescription string `json:"job_description" validate:"required"`
}

type CompareResponse struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	ResumeID       string   `json:"resume_id"`
	ResumeFilename string   `json:"resume_filename"`
	MatchScore     float64  `json:"match_score"`
	SuccessRate    float64  `json:"success_rate"`
	MatchedSkills  []string `json:"matched_skills"`
	JobSkills      []string `json:"job_skills"`
}

type MatchRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

type MatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type MatchResultResponse struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	JobSkills    []string          `json:"job_skills,omitempty"`
	Results      []PoolMatchResult `json:"results,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}
