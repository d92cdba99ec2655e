package model

import "time"

// Format identifies an export document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Formats lists every export format offered after a successful summary.
var Formats = []Format{FormatPDF, FormatDOCX}

// Export represents a rendered summary document kept in object storage.
// This is a pure domain model with no database-specific dependencies or tags.
type Export struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"-"`
	Format      Format    `json:"format"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"-"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
