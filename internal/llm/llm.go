package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the profile-extraction collaborator. Both methods return
// the provider's raw JSON; shaping and defaulting happen downstream so a
// misbehaving provider can never crash a screening.
type Client interface {
	ExtractJobProfile(ctx context.Context, input JobInput) (json.RawMessage, error)
	ExtractResumeProfile(ctx context.Context, input ResumeInput) (json.RawMessage, error)
}

// JobInput captures the inputs for job-description analysis.
type JobInput struct {
	JobText string
	Title   string
}

// ResumeInput captures the inputs for resume analysis. JobContext, when
// present, steers the extraction toward the target role.
type ResumeInput struct {
	ResumeText string
	JobContext string
}

type fixJSONKey struct{}

// WithFixJSON returns a context signaling a fix-JSON retry with the given
// raw output.
func WithFixJSON(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, fixJSONKey{}, raw)
}

// FixJSONFromContext returns the raw JSON to repair, if any.
func FixJSONFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(fixJSONKey{}).(string)
	return raw, ok
}

type promptHashKey struct{}

// WithPromptHashCapture returns a context that lets the provider report the
// hash of the prompt it actually sent.
func WithPromptHashCapture(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, promptHashKey{}, sink)
}

// PromptHashSinkFromContext returns the prompt-hash sink, if any.
func PromptHashSinkFromContext(ctx context.Context) (*string, bool) {
	sink, ok := ctx.Value(promptHashKey{}).(*string)
	return sink, ok
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation used when no provider is
// configured. Screenings still complete: extraction failures degrade to
// fallback profiles.
type PlaceholderClient struct{}

func (PlaceholderClient) ExtractJobProfile(ctx context.Context, input JobInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}

func (PlaceholderClient) ExtractResumeProfile(ctx context.Context, input ResumeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
