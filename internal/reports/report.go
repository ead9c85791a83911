// Package reports implements the expense report domain for perdiem.
// It provides types, data access, and business logic for report upload,
// metadata management, and blob storage integration.
package reports

import (
	"time"

	"github.com/google/uuid"
)

// Report lifecycle statuses. A report is pending until an audit run
// completes against it.
const (
	StatusPending = "pending"
	StatusAudited = "audited"
)

// Report represents an uploaded expense report with its metadata and blob
// storage reference. The audit fields come from a LEFT JOIN against the
// audits table and are nil until the report has been audited.
type Report struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	TicketID  *string    `json:"ticket_id"`
	Approved  *bool      `json:"approved"`
	AuditedAt *time.Time `json:"audited_at"`
}

// CreateCommand carries the data needed to upload and register a new report.
// Data holds the raw file bytes. PageCount is optional and may be extracted
// by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}
