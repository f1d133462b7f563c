package documents

import "time"

// Document is an uploaded resume (or job description file) owned by a user.
// StorageKey points at the original bytes in the object store;
// ExtractedTextKey, once set, points at the cached plain-text extraction so
// repeat screenings skip the parse step.
type Document struct {
	ID               string
	UserID           string
	FileName         string
	OriginalFilename string
	MimeType         string
	ContentType      string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}

// Extracted reports whether a cached text extraction exists for the document.
func (d Document) Extracted() bool {
	return d.ExtractedTextKey != ""
}
