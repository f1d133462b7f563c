package object

import (
	"context"
	"io"
)

// ObjectStore saves and retrieves binary objects: uploaded resumes and the
// plain-text extractions cached next to them. Keys are opaque to callers;
// implementations scope them per user.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
