package screenings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const screeningColumns = `id, user_id, kind, document_ids, job_title, job_description, resume_text,
       status, result, scoring_version, provider, model, prompt_hash,
       error_code, error_message, error_retryable, started_at, completed_at, created_at, updated_at`

// Create inserts a new screening.
func (r *PGRepo) Create(ctx context.Context, screening Screening) error {
	const query = `
INSERT INTO screenings (
	id, user_id, kind, document_ids, job_title, job_description, resume_text,
	status, result, scoring_version, provider, model, prompt_hash, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	docIDs, err := json.Marshal(documentIDsOrEmpty(screening.DocumentIDs))
	if err != nil {
		return err
	}
	resultPayload, err := marshalJSONB(screening.Result)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		screening.ID,
		screening.UserID,
		screening.Kind,
		docIDs,
		screening.JobTitle,
		screening.JobDescription,
		screening.ResumeText,
		screening.Status,
		resultPayload,
		screening.ScoringVersion,
		screening.Provider,
		screening.Model,
		screening.PromptHash,
		screening.CreatedAt,
	)
	return err
}

// GetByID returns a screening by ID.
func (r *PGRepo) GetByID(ctx context.Context, screeningID string) (Screening, error) {
	const query = `
SELECT ` + screeningColumns + `
FROM screenings
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, screeningID)
	screening, err := scanScreening(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Screening{}, ErrNotFound
		}
		return Screening{}, err
	}
	return screening, nil
}

// UpdateStatusResultAndError updates status/result/error fields and timestamps.
func (r *PGRepo) UpdateStatusResultAndError(ctx context.Context, screeningID, status string, result map[string]any, errorCode *string, errorMessage *string, errorRetryable *bool, startedAt *time.Time, completedAt *time.Time) error {
	const query = `
UPDATE screenings
SET status = $1,
    result = COALESCE($2::jsonb, result),
    error_code = COALESCE($3::text, error_code),
    error_message = COALESCE($4::text, error_message),
    error_retryable = CASE
        WHEN $5::boolean IS NOT NULL THEN $5::boolean
        ELSE error_retryable
    END,
    started_at = CASE
        WHEN $6::timestamptz IS NOT NULL THEN $6::timestamptz
        WHEN $1 = 'processing' AND started_at IS NULL THEN now()
        ELSE started_at
    END,
    completed_at = CASE
        WHEN $7::timestamptz IS NOT NULL THEN $7::timestamptz
        WHEN ($1 = 'completed' OR $1 = 'failed') AND completed_at IS NULL THEN now()
        ELSE completed_at
    END,
    updated_at = now()
WHERE id = $8::uuid`

	var payload any
	var err error
	if result != nil {
		payload, err = json.Marshal(result)
		if err != nil {
			return err
		}
	}

	res, err := r.DB.ExecContext(ctx, query, status, payload, errorCode, errorMessage, errorRetryable, startedAt, completedAt, screeningID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePromptMetadata updates scoring_version and prompt_hash.
func (r *PGRepo) UpdatePromptMetadata(ctx context.Context, screeningID, scoringVersion, promptHash string) error {
	const query = `
UPDATE screenings
SET scoring_version = COALESCE(NULLIF($1::text, ''), scoring_version),
    prompt_hash = COALESCE(NULLIF($2::text, ''), prompt_hash),
    updated_at = now()
WHERE id = $3::uuid`

	res, err := r.DB.ExecContext(ctx, query, scoringVersion, promptHash, screeningID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser lists screenings for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Screening, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT ` + screeningColumns + `
FROM screenings
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Screening
	for rows.Next() {
		screening, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, screening)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScreening(row rowScanner) (Screening, error) {
	var s Screening
	var docIDs sql.NullString
	var jobTitle sql.NullString
	var jobDescription sql.NullString
	var resumeText sql.NullString
	var result sql.NullString
	var scoringVersion sql.NullString
	var provider sql.NullString
	var model sql.NullString
	var promptHash sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var errorRetryable sql.NullBool
	var startedAt sql.NullTime
	var completedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Kind,
		&docIDs,
		&jobTitle,
		&jobDescription,
		&resumeText,
		&s.Status,
		&result,
		&scoringVersion,
		&provider,
		&model,
		&promptHash,
		&errorCode,
		&errorMessage,
		&errorRetryable,
		&startedAt,
		&completedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return Screening{}, err
	}
	if docIDs.Valid {
		_ = json.Unmarshal([]byte(docIDs.String), &s.DocumentIDs)
	}
	if jobTitle.Valid {
		s.JobTitle = jobTitle.String
	}
	if jobDescription.Valid {
		s.JobDescription = jobDescription.String
	}
	if resumeText.Valid {
		s.ResumeText = resumeText.String
	}
	if result.Valid {
		s.Result = map[string]any{}
		if err := json.Unmarshal([]byte(result.String), &s.Result); err != nil {
			s.Result = nil
		}
	}
	if scoringVersion.Valid {
		s.ScoringVersion = scoringVersion.String
	}
	if provider.Valid {
		s.Provider = provider.String
	}
	if model.Valid {
		s.Model = model.String
	}
	if promptHash.Valid {
		s.PromptHash = promptHash.String
	}
	if errorCode.Valid {
		s.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		s.ErrorMessage = &errorMessage.String
	}
	if errorRetryable.Valid {
		s.ErrorRetryable = errorRetryable.Bool
	}
	if startedAt.Valid {
		s.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}
	return s, nil
}

func documentIDsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func marshalJSONB(value any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}
