// Package audits implements the audit domain for perdiem. It provides types,
// data access, and business logic for running the audit workflow against
// uploaded reports and for storing, querying, and reviewing audit outcomes.
package audits

import (
	"time"

	"github.com/google/uuid"
)

// Audit represents a stored audit outcome for an expense report. It mirrors
// the audits table schema with flattened workflow findings.
type Audit struct {
	ID       uuid.UUID `json:"id"`
	ReportID uuid.UUID `json:"report_id"`
	TicketID *string   `json:"ticket_id"`
	Approved bool      `json:"approved"`
	Comment  string    `json:"comment"`

	TicketFound  bool `json:"ticket_found"`
	TotalOK      bool `json:"total_ok"`
	PeriodsMatch bool `json:"periods_match"`
	AllowanceOK  bool `json:"allowance_ok"`

	TripDays          *int    `json:"trip_days"`
	ExpectedAllowance float64 `json:"expected_allowance"`

	ModelName    string     `json:"model_name"`
	ProviderName string     `json:"provider_name"`
	AuditedAt    time.Time  `json:"audited_at"`
	ReviewedBy   *string    `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
}

// reviewable returns ErrAlreadyReviewed when the audit already carries a
// human sign-off.
func reviewable(a *Audit) error {
	if a.ReviewedAt != nil {
		return ErrAlreadyReviewed
	}
	return nil
}

// ReviewCommand carries the data needed to mark an audit as reviewed.
// ReviewedBy identifies the human who confirmed the outcome.
type ReviewCommand struct {
	ReviewedBy string `json:"reviewed_by"`
}

// OverrideCommand carries the data needed to manually override an audit
// outcome. Approved and Comment overwrite the workflow-produced values.
// UpdatedBy identifies the human who made the change (stored as reviewed_by).
type OverrideCommand struct {
	Approved  bool   `json:"approved"`
	Comment   string `json:"comment"`
	UpdatedBy string `json:"updated_by"`
}
