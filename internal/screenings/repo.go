package screenings

import (
	"context"
	"time"
)

// Repo defines persistence operations for screenings.
type Repo interface {
	Create(ctx context.Context, screening Screening) error
	GetByID(ctx context.Context, screeningID string) (Screening, error)
	UpdateStatusResultAndError(ctx context.Context, screeningID, status string, result map[string]any, errorCode *string, errorMessage *string, errorRetryable *bool, startedAt *time.Time, completedAt *time.Time) error
	UpdatePromptMetadata(ctx context.Context, screeningID, scoringVersion, promptHash string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Screening, error)
}
