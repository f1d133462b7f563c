package screenings

import "time"

const (
	KindText  = "text"
	KindFile  = "file"
	KindBatch = "batch"
)

// Screening represents one request to score resumes against a job
// description, together with its lifecycle state and final result.
type Screening struct {
	ID             string
	UserID         string
	Kind           string
	DocumentIDs    []string
	JobTitle       string
	JobDescription string
	ResumeText     string
	ScoringVersion string
	Provider       string
	Model          string
	PromptHash     string
	Status         string
	Result         map[string]any
	ErrorCode      string
	ErrorMessage   *string
	ErrorRetryable bool
	StartedAt      *time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
