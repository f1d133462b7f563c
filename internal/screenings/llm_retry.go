package screenings

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"screening-backend/internal/llm"
)

const llmRetryBaseDelay = 300 * time.Millisecond

type retryingLLM struct {
	base        llm.Client
	requestID   string
	screeningID string
}

func newRetryingLLM(base llm.Client, screeningID, requestID string) llm.Client {
	if base == nil {
		return nil
	}
	return retryingLLM{
		base:        base,
		requestID:   requestID,
		screeningID: screeningID,
	}
}

func (r retryingLLM) ExtractJobProfile(ctx context.Context, input llm.JobInput) (json.RawMessage, error) {
	return r.retry(ctx, "job_profile", func() (json.RawMessage, error) {
		return r.base.ExtractJobProfile(ctx, input)
	})
}

func (r retryingLLM) ExtractResumeProfile(ctx context.Context, input llm.ResumeInput) (json.RawMessage, error) {
	return r.retry(ctx, "resume_profile", func() (json.RawMessage, error) {
		return r.base.ExtractResumeProfile(ctx, input)
	})
}

func (r retryingLLM) retry(ctx context.Context, kind string, call func() (json.RawMessage, error)) (json.RawMessage, error) {
	resp, err := call()
	if err == nil || !shouldRetryLLM(err) {
		return resp, err
	}

	log.Printf("llm retry attempt=1 kind=%s request_id=%s screening_id=%s error=%s", kind, r.requestID, r.screeningID, sanitizeError(err))
	select {
	case <-time.After(llmRetryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return call()
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
