package audits

import (
	"net/url"
	"strconv"

	"github.com/mbaumgart/perdiem/pkg/query"
	"github.com/mbaumgart/perdiem/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audits", "a").
	Project("id", "ID").
	Project("report_id", "ReportID").
	Project("ticket_id", "TicketID").
	Project("approved", "Approved").
	Project("comment", "Comment").
	Project("ticket_found", "TicketFound").
	Project("total_ok", "TotalOK").
	Project("periods_match", "PeriodsMatch").
	Project("allowance_ok", "AllowanceOK").
	Project("trip_days", "TripDays").
	Project("expected_allowance", "ExpectedAllowance").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("audited_at", "AuditedAt").
	Project("reviewed_by", "ReviewedBy").
	Project("reviewed_at", "ReviewedAt")

var defaultSort = query.SortField{
	Field:      "AuditedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for audit queries.
// Nil fields are ignored. Approved and the check flags use exact matching.
// TicketID uses case-insensitive contains matching.
type Filters struct {
	TicketID    *string `json:"ticket_id,omitempty"`
	Approved    *bool   `json:"approved,omitempty"`
	TicketFound *bool   `json:"ticket_found,omitempty"`
	Reviewed    *bool   `json:"reviewed,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereContains("TicketID", f.TicketID).
		WhereEquals("Approved", f.Approved).
		WhereEquals("TicketFound", f.TicketFound)

	if f.Reviewed != nil {
		if *f.Reviewed {
			b.WhereNotNull("ReviewedAt")
		} else {
			b.WhereNullable("ReviewedAt", nil)
		}
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("ticket_id"); t != "" {
		f.TicketID = &t
	}

	if a := values.Get("approved"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Approved = &v
		}
	}

	if tf := values.Get("ticket_found"); tf != "" {
		if v, err := strconv.ParseBool(tf); err == nil {
			f.TicketFound = &v
		}
	}

	if rv := values.Get("reviewed"); rv != "" {
		if v, err := strconv.ParseBool(rv); err == nil {
			f.Reviewed = &v
		}
	}

	return f
}

func scanAudit(s repository.Scanner) (Audit, error) {
	var a Audit
	err := s.Scan(
		&a.ID,
		&a.ReportID,
		&a.TicketID,
		&a.Approved,
		&a.Comment,
		&a.TicketFound,
		&a.TotalOK,
		&a.PeriodsMatch,
		&a.AllowanceOK,
		&a.TripDays,
		&a.ExpectedAllowance,
		&a.ModelName,
		&a.ProviderName,
		&a.AuditedAt,
		&a.ReviewedBy,
		&a.ReviewedAt,
	)
	return a, err
}
