package screenings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"screening-backend/internal/documents"
	"screening-backend/internal/extract"
	"screening-backend/internal/llm"
	"screening-backend/internal/profile"
	"screening-backend/internal/queue"
	"screening-backend/internal/scoring"
	"screening-backend/internal/shared/metrics"
	"screening-backend/internal/shared/storage/object"
	"screening-backend/internal/shared/telemetry"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	// MaxBatchDocuments caps how many resumes one batch screening accepts.
	MaxBatchDocuments = 20

	defaultBatchConcurrency = 4
)

// Service contains business logic for screenings.
type Service struct {
	Repo             Repo
	DocRepo          documents.DocumentsRepo
	Store            object.ObjectStore
	LLM              llm.Client
	JobQueue         queue.Client
	Provider         string
	Model            string
	ScoringVersion   string
	BatchConcurrency int
}

// CreateFromText enqueues a screening of inline resume text.
func (s *Service) CreateFromText(ctx context.Context, userID, jobTitle, jobDescription, resumeText string) (Screening, error) {
	if userID == "" {
		return Screening{}, errors.New("userID is required")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return Screening{}, errors.New("jobDescription is required")
	}
	if strings.TrimSpace(resumeText) == "" {
		return Screening{}, errors.New("resumeText is required")
	}

	screening := s.newScreening(userID, KindText, jobTitle, jobDescription)
	screening.ResumeText = resumeText

	if err := s.Repo.Create(ctx, screening); err != nil {
		return Screening{}, err
	}
	s.dispatch(ctx, screening.ID)
	return screening, nil
}

// CreateFromDocument enqueues a screening of one uploaded resume.
func (s *Service) CreateFromDocument(ctx context.Context, userID, jobTitle, jobDescription, documentID string) (Screening, error) {
	if userID == "" || documentID == "" {
		return Screening{}, errors.New("userID and documentID are required")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return Screening{}, errors.New("jobDescription is required")
	}

	screening := s.newScreening(userID, KindFile, jobTitle, jobDescription)
	screening.DocumentIDs = []string{documentID}

	if err := s.Repo.Create(ctx, screening); err != nil {
		return Screening{}, err
	}
	s.dispatch(ctx, screening.ID)
	return screening, nil
}

// CreateBatch enqueues a screening of several uploaded resumes against one
// job description.
func (s *Service) CreateBatch(ctx context.Context, userID, jobTitle, jobDescription string, documentIDs []string) (Screening, error) {
	if userID == "" {
		return Screening{}, errors.New("userID is required")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return Screening{}, errors.New("jobDescription is required")
	}
	if len(documentIDs) == 0 {
		return Screening{}, errors.New("at least one document is required")
	}
	if len(documentIDs) > MaxBatchDocuments {
		return Screening{}, fmt.Errorf("batch is limited to %d documents", MaxBatchDocuments)
	}

	screening := s.newScreening(userID, KindBatch, jobTitle, jobDescription)
	screening.DocumentIDs = append([]string(nil), documentIDs...)

	if err := s.Repo.Create(ctx, screening); err != nil {
		return Screening{}, err
	}
	s.dispatch(ctx, screening.ID)
	return screening, nil
}

// Get returns a screening by ID.
func (s *Service) Get(ctx context.Context, screeningID string) (Screening, error) {
	if screeningID == "" {
		return Screening{}, errors.New("screeningID is required")
	}
	return s.Repo.GetByID(ctx, screeningID)
}

// List returns screenings for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Screening, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) newScreening(userID, kind, jobTitle, jobDescription string) Screening {
	return Screening{
		ID:             uuid.NewString(),
		UserID:         userID,
		Kind:           kind,
		JobTitle:       strings.TrimSpace(jobTitle),
		JobDescription: jobDescription,
		ScoringVersion: normalizeScoringVersion(s.ScoringVersion),
		Provider:       normalizeProvider(s.Provider),
		Model:          s.Model,
		Status:         StatusQueued,
		CreatedAt:      time.Now().UTC(),
	}
}

func normalizeProvider(provider string) string {
	if strings.TrimSpace(provider) == "" {
		return "openai"
	}
	return provider
}

func normalizeScoringVersion(version string) string {
	if strings.TrimSpace(version) == "" {
		return "unknown"
	}
	return strings.TrimSpace(version)
}

// dispatch hands the screening to the queue when one is configured and
// otherwise completes it on a background goroutine.
func (s *Service) dispatch(ctx context.Context, screeningID string) {
	if s.JobQueue != nil {
		msg := queue.Message{
			ScreeningID: screeningID,
			RequestID:   requestIDFromContext(ctx),
			EnqueuedAt:  time.Now().UTC().Format(time.RFC3339),
			Version:     1,
		}
		err := s.JobQueue.Send(ctx, msg)
		if err == nil {
			return
		}
		// Fall back to in-process completion when the queue is unreachable.
		telemetry.Error("screening.enqueue_failed", map[string]any{
			"request_id":   requestIDFromContext(ctx),
			"screening_id": screeningID,
			"error":        sanitizeError(err),
		})
	}
	go s.completeAsync(backgroundWithRequestID(ctx), screeningID)
}

func (s *Service) completeAsync(ctx context.Context, screeningID string) {
	_ = s.ProcessScreening(ctx, screeningID)
}

// ProcessScreening runs the full pipeline for one screening. Workers call it
// directly; in-process dispatch reaches it through completeAsync.
func (s *Service) ProcessScreening(ctx context.Context, screeningID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			s.failScreening(ctx, screeningID, "", err, &startedAt)
		}
	}()

	if err := s.Repo.UpdateStatusResultAndError(ctx, screeningID, StatusProcessing, nil, nil, nil, nil, &startedAt, nil); err != nil {
		err = fmt.Errorf("set processing failed: %w", err)
		s.failScreening(ctx, screeningID, "", err, &startedAt)
		return err
	}

	screening, err := s.Repo.GetByID(ctx, screeningID)
	if err != nil {
		err = fmt.Errorf("screening lookup: %w", err)
		s.failScreening(ctx, screeningID, "", err, &startedAt)
		return err
	}

	metrics.IncScreeningStarted()
	telemetry.Info("screening.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           screening.UserID,
		"screening_id":      screening.ID,
		"kind":              screening.Kind,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	if s.LLM == nil {
		err = errors.New("missing llm client")
		s.failScreening(ctx, screeningID, screening.UserID, err, &startedAt)
		return err
	}
	if screening.Kind != KindText && (s.DocRepo == nil || s.Store == nil) {
		err = errors.New("missing document store dependencies")
		s.failScreening(ctx, screeningID, screening.UserID, err, &startedAt)
		return err
	}

	requestID := requestIDFromContext(ctx)
	llmClient := newRetryingLLM(s.LLM, screeningID, requestID)

	var promptHash string
	ctxWithHash := llm.WithPromptHashCapture(ctx, &promptHash)

	jobProfile, jobDefaulted, jobDegraded := s.extractJobProfile(ctxWithHash, llmClient, screening)

	var result map[string]any
	switch screening.Kind {
	case KindText:
		result, err = s.scoreSingle(ctxWithHash, llmClient, screening, jobProfile, "resume.txt", screening.ResumeText)
	case KindFile:
		result, err = s.scoreDocument(ctxWithHash, llmClient, screening, jobProfile)
	case KindBatch:
		result, err = s.scoreBatch(ctxWithHash, llmClient, screening, jobProfile)
	default:
		err = fmt.Errorf("unknown screening kind %q", screening.Kind)
	}
	if err != nil {
		s.failScreening(ctx, screeningID, screening.UserID, err, &startedAt)
		return err
	}

	if jobDegraded {
		result["degraded"] = true
		result["defaulted_fields"] = mergeDefaulted(jobDefaulted, result["defaulted_fields"])
	} else if len(jobDefaulted) > 0 {
		result["defaulted_fields"] = mergeDefaulted(jobDefaulted, result["defaulted_fields"])
	}

	if err := s.Repo.UpdatePromptMetadata(ctx, screeningID, screening.ScoringVersion, promptHash); err != nil {
		err = fmt.Errorf("set prompt metadata failed: %w", err)
		s.failScreening(ctx, screeningID, screening.UserID, err, &startedAt)
		return err
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.UpdateStatusResultAndError(ctx, screeningID, StatusCompleted, result, nil, nil, nil, nil, &completedAt); err != nil {
		err = fmt.Errorf("set screening result failed: %w", err)
		s.failScreening(ctx, screeningID, screening.UserID, err, &startedAt)
		return err
	}

	metrics.IncScreeningCompleted()
	metrics.ObserveScreeningDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("screening.status", map[string]any{
		"request_id":        requestID,
		"user_id":           screening.UserID,
		"screening_id":      screening.ID,
		"kind":              screening.Kind,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
	return nil
}

// extractJobProfile asks the LLM for a structured job profile. Extraction
// failure degrades to a fallback profile instead of failing the screening.
func (s *Service) extractJobProfile(ctx context.Context, client llm.Client, screening Screening) (profile.JobProfile, []string, bool) {
	raw, err := client.ExtractJobProfile(ctx, llm.JobInput{
		JobText: screening.JobDescription,
		Title:   screening.JobTitle,
	})
	if err != nil {
		telemetry.Error("screening.job_extraction_degraded", map[string]any{
			"request_id":   requestIDFromContext(ctx),
			"screening_id": screening.ID,
			"error":        sanitizeError(err),
		})
		fallback := profile.FallbackJobProfile()
		if screening.JobTitle != "" {
			fallback.Title = screening.JobTitle
		}
		return fallback, []string{"$"}, true
	}
	jobProfile, defaulted := profile.DecodeJobProfile(raw)
	return jobProfile, defaulted, false
}

// extractResumeProfile mirrors extractJobProfile for one resume.
func (s *Service) extractResumeProfile(ctx context.Context, client llm.Client, screening Screening, resumeText string) (profile.ResumeProfile, []string, bool) {
	raw, err := client.ExtractResumeProfile(ctx, llm.ResumeInput{
		ResumeText: resumeText,
		JobContext: screening.JobTitle,
	})
	if err != nil {
		telemetry.Error("screening.resume_extraction_degraded", map[string]any{
			"request_id":   requestIDFromContext(ctx),
			"screening_id": screening.ID,
			"error":        sanitizeError(err),
		})
		return profile.FallbackResumeProfile(), []string{"$"}, true
	}
	resumeProfile, defaulted := profile.DecodeResumeProfile(raw)
	return resumeProfile, defaulted, false
}

func (s *Service) scoreSingle(ctx context.Context, client llm.Client, screening Screening, jobProfile profile.JobProfile, filename, resumeText string) (map[string]any, error) {
	resumeProfile, defaulted, degraded := s.extractResumeProfile(ctx, client, screening, resumeText)
	score := scoring.ScoreOne(resumeProfile, jobProfile)

	scoreMap, err := toMap(score)
	if err != nil {
		return nil, fmt.Errorf("encode score result: %w", err)
	}
	result := map[string]any{
		"kind":     screening.Kind,
		"filename": filename,
		"score":    scoreMap,
	}
	if degraded {
		result["degraded"] = true
		result["defaulted_fields"] = defaulted
	} else if len(defaulted) > 0 {
		result["defaulted_fields"] = defaulted
	}
	return result, nil
}

func (s *Service) scoreDocument(ctx context.Context, client llm.Client, screening Screening, jobProfile profile.JobProfile) (map[string]any, error) {
	if len(screening.DocumentIDs) != 1 {
		return nil, fmt.Errorf("file screening expects exactly one document, got %d", len(screening.DocumentIDs))
	}
	doc, text, err := s.resumeText(ctx, screening.UserID, screening.DocumentIDs[0])
	if err != nil {
		return nil, err
	}
	return s.scoreSingle(ctx, client, screening, jobProfile, doc.FileName, text)
}

// scoreBatch scores every document concurrently. Entries fail independently:
// a resume that cannot be parsed or scored becomes a zero-scored error entry
// and never aborts the batch.
func (s *Service) scoreBatch(ctx context.Context, client llm.Client, screening Screening, jobProfile profile.JobProfile) (map[string]any, error) {
	items := make([]scoring.BatchItem, len(screening.DocumentIDs))
	degradedAny := false
	var defaultedAll []string

	concurrency := s.BatchConcurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	results := make(chan batchEntry, len(screening.DocumentIDs))

	for i, documentID := range screening.DocumentIDs {
		i, documentID := i, documentID
		g.Go(func() error {
			results <- s.scoreBatchEntry(gctx, client, screening, jobProfile, i, documentID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	for entry := range results {
		items[entry.index] = entry.item
		if entry.degraded {
			degradedAny = true
		}
		defaultedAll = append(defaultedAll, entry.defaulted...)
	}

	ranked := scoring.RankBatch(items)
	rankedMap, err := toMap(ranked)
	if err != nil {
		return nil, fmt.Errorf("encode batch result: %w", err)
	}
	result := map[string]any{
		"kind":  screening.Kind,
		"batch": rankedMap,
	}
	if degradedAny {
		result["degraded"] = true
	}
	if len(defaultedAll) > 0 {
		result["defaulted_fields"] = defaultedAll
	}
	return result, nil
}

type batchEntry struct {
	index     int
	item      scoring.BatchItem
	degraded  bool
	defaulted []string
}

func (s *Service) scoreBatchEntry(ctx context.Context, client llm.Client, screening Screening, jobProfile profile.JobProfile, index int, documentID string) batchEntry {
	doc, text, err := s.resumeText(ctx, screening.UserID, documentID)
	if err != nil {
		filename := documentID
		if doc.FileName != "" {
			filename = doc.FileName
		}
		return batchEntry{
			index: index,
			item:  scoring.BatchItem{Filename: filename, Error: sanitizeError(err)},
		}
	}

	resumeProfile, defaulted, degraded := s.extractResumeProfile(ctx, client, screening, text)
	score := scoring.ScoreOne(resumeProfile, jobProfile)
	return batchEntry{
		index:     index,
		item:      scoring.BatchItem{Filename: doc.FileName, Score: &score},
		degraded:  degraded,
		defaulted: prefixDefaulted(doc.FileName, defaulted),
	}
}

// resumeText loads a document and returns its extracted plain text, parsing
// and caching the extraction on first use.
func (s *Service) resumeText(ctx context.Context, userID, documentID string) (documents.Document, string, error) {
	doc, err := s.DocRepo.GetByID(ctx, userID, documentID)
	if err != nil {
		return documents.Document{}, "", fmt.Errorf("document lookup id=%s: %w", documentID, err)
	}

	if doc.Extracted() {
		text, err := loadText(ctx, s.Store, doc.ExtractedTextKey)
		if err != nil {
			return doc, "", fmt.Errorf("document %s: load extracted text: %w", doc.ID, err)
		}
		return doc, text, nil
	}

	text, err := extract.ParseStored(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return doc, "", fmt.Errorf("document %s mime %s: %w", doc.ID, doc.MimeType, err)
	}
	if err := s.DocRepo.UpdateExtraction(ctx, doc.UserID, doc.ID, extract.ExtractedKey(doc.StorageKey), time.Now().UTC()); err != nil {
		return doc, "", fmt.Errorf("document %s: update extraction: %w", doc.ID, err)
	}
	return doc, text, nil
}

func (s *Service) failScreening(ctx context.Context, screeningID, userID string, err error, startedAt *time.Time) {
	code, retryable := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.UpdateStatusResultAndError(context.Background(), screeningID, StatusFailed, nil, &code, &msg, &retryable, nil, &completedAt); updateErr != nil {
		telemetry.Error("screening.fail_update_failed", map[string]any{
			"screening_id": screeningID,
			"error":        sanitizeError(updateErr),
			"original":     msg,
		})
	}
	metrics.IncScreeningFailed()
	if startedAt != nil {
		metrics.ObserveScreeningDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("screening.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"screening_id":      screeningID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	var parseErr *extract.ParseError
	if errors.As(err, &parseErr) {
		return ErrorCodeDocumentParse, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeLLMTimeout, true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "openai request timeout") {
		return ErrorCodeLLMTimeout, true
	}
	if strings.Contains(msg, "timeout") && strings.Contains(msg, "llm") {
		return ErrorCodeLLMTimeout, true
	}
	if strings.Contains(msg, "schema") || strings.Contains(msg, "llm output invalid") {
		return ErrorCodeLLMSchemaMismatch, false
	}
	if strings.Contains(msg, "validation") && !strings.Contains(msg, "llm") {
		return ErrorCodeValidation, false
	}
	if strings.Contains(msg, "document") || strings.Contains(msg, "storage") || strings.Contains(msg, "screening result") || strings.Contains(msg, "prompt metadata") || strings.Contains(msg, "set processing") {
		return ErrorCodeStorage, true
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

func loadText(ctx context.Context, store object.ObjectStore, key string) (string, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toMap(value any) (map[string]any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func prefixDefaulted(filename string, defaulted []string) []string {
	if len(defaulted) == 0 {
		return nil
	}
	out := make([]string, 0, len(defaulted))
	for _, field := range defaulted {
		out = append(out, filename+": "+field)
	}
	return out
}

func mergeDefaulted(jobDefaulted []string, existing any) []string {
	merged := make([]string, 0, len(jobDefaulted))
	for _, field := range jobDefaulted {
		merged = append(merged, "job: "+field)
	}
	if list, ok := existing.([]string); ok {
		merged = append(merged, list...)
	}
	return merged
}
