package file

import (
	"time"

	"atlas-cms/internal/upload"
)

// Translation is a localized caption set attached to a stored file.
type Translation struct {
	Locale      string
	Title       string
	Subtitle    string
	Description string
}

// StoredFile is a persisted upload with its resolved URLs.
type StoredFile struct {
	ID           string
	ProjectID    string
	Type         string
	OriginalName string
	StorageKey   string
	ThumbnailKey *string
	MimeType     string
	Bytes        int64
	URL          string
	ThumbnailURL *string
	Translations []Translation
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UploadRequest is one file submission.
type UploadRequest struct {
	ProjectID    string
	DeclaredType string
	Part         upload.RawFilePart
	Metadata     *upload.Metadata
}

// ReplaceRequest updates an existing file's payload and/or translations.
// Part is optional; a nil Source leaves the stored blob untouched.
type ReplaceRequest struct {
	ProjectID    string
	FileID       string
	DeclaredType string // must match the stored type when set
	Part         *upload.RawFilePart
	Metadata     *upload.Metadata
}

// BatchRequest is a multi-file submission. Rejected carries files the form
// decoder already refused; they surface in the report unchanged.
type BatchRequest struct {
	ProjectID    string
	DeclaredType string
	Parts        []upload.RawFilePart
	Rejected     []upload.RejectedPart
}

// BatchFailure names one file that did not make it.
type BatchFailure struct {
	Name string
	Err  error
}

// BatchReport is the outcome of a batch upload. Partial failure is a valid
// outcome, not an error.
type BatchReport struct {
	Succeeded []*StoredFile
	Failed    []BatchFailure
}

// ListQuery filters and paginates the file listing. Limit -1 disables
// pagination.
type ListQuery struct {
	ProjectID string
	Title     string
	Limit     int
	Page      int
}

// DropdownItem is the reduced shape used by picker widgets.
type DropdownItem struct {
	ID   string
	Name string
	Type string
}
