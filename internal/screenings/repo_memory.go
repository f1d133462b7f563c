package screenings

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores screenings in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Screening
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Screening),
		byUser: make(map[string][]string),
	}
}

// Create stores the screening.
func (r *MemoryRepo) Create(ctx context.Context, screening Screening) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[screening.ID] = screening
	r.byUser[screening.UserID] = append(r.byUser[screening.UserID], screening.ID)
	return nil
}

// GetByID returns a screening by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, screeningID string) (Screening, error) {
	if err := ctx.Err(); err != nil {
		return Screening{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	screening, ok := r.byID[screeningID]
	if !ok {
		return Screening{}, ErrNotFound
	}
	return screening, nil
}

// UpdateStatusResultAndError updates status/result/error fields and timestamps.
func (r *MemoryRepo) UpdateStatusResultAndError(ctx context.Context, screeningID, status string, result map[string]any, errorCode *string, errorMessage *string, errorRetryable *bool, startedAt *time.Time, completedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	screening, ok := r.byID[screeningID]
	if !ok {
		return ErrNotFound
	}
	screening.Status = status
	if result != nil {
		screening.Result = result
	}
	if errorCode != nil {
		screening.ErrorCode = *errorCode
	}
	if errorMessage != nil {
		screening.ErrorMessage = errorMessage
	}
	if errorRetryable != nil {
		screening.ErrorRetryable = *errorRetryable
	}
	if startedAt != nil {
		screening.StartedAt = startedAt
	} else if status == StatusProcessing && screening.StartedAt == nil {
		now := time.Now().UTC()
		screening.StartedAt = &now
	}
	if completedAt != nil {
		screening.CompletedAt = completedAt
	} else if (status == StatusCompleted || status == StatusFailed) && screening.CompletedAt == nil {
		now := time.Now().UTC()
		screening.CompletedAt = &now
	}
	screening.UpdatedAt = time.Now().UTC()
	r.byID[screeningID] = screening
	return nil
}

// UpdatePromptMetadata updates scoring version and prompt hash.
func (r *MemoryRepo) UpdatePromptMetadata(ctx context.Context, screeningID, scoringVersion, promptHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	screening, ok := r.byID[screeningID]
	if !ok {
		return ErrNotFound
	}
	if scoringVersion != "" {
		screening.ScoringVersion = scoringVersion
	}
	if promptHash != "" {
		screening.PromptHash = promptHash
	}
	screening.UpdatedAt = time.Now().UTC()
	r.byID[screeningID] = screening
	return nil
}

// ListByUser returns screenings for a user, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Screening, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	screenings := make([]Screening, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			screenings = append(screenings, s)
		}
	}
	r.mu.RUnlock()

	if len(screenings) == 0 || offset >= len(screenings) {
		return []Screening{}, nil
	}

	sort.Slice(screenings, func(i, j int) bool {
		return screenings[i].CreatedAt.After(screenings[j].CreatedAt)
	})

	end := len(screenings)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return screenings[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
