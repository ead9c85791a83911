package reports

import (
	"net/url"

	"github.com/mbaumgart/perdiem/pkg/query"
	"github.com/mbaumgart/perdiem/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reports", "r").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "audits", "a", "LEFT JOIN", "r.id = a.report_id").
	Project("ticket_id", "TicketID").
	Project("approved", "Approved").
	Project("audited_at", "AuditedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for report queries.
// Nil fields are ignored. Status, ContentType, Approved, and TicketID use
// exact matching. Filename uses case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	TicketID    *string `json:"ticket_id,omitempty"`
	Approved    *bool   `json:"approved,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType).
		WhereEquals("TicketID", f.TicketID).
		WhereEquals("Approved", f.Approved)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if t := values.Get("ticket_id"); t != "" {
		f.TicketID = &t
	}

	if a := values.Get("approved"); a != "" {
		approved := a == "true"
		f.Approved = &approved
	}

	return f
}

func scanReport(s repository.Scanner) (Report, error) {
	var r Report
	err := s.Scan(
		&r.ID,
		&r.Filename,
		&r.ContentType,
		&r.SizeBytes,
		&r.PageCount,
		&r.StorageKey,
		&r.Status,
		&r.UploadedAt,
		&r.UpdatedAt,
		&r.TicketID,
		&r.Approved,
		&r.AuditedAt,
	)
	return r, err
}
