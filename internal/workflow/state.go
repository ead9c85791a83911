package workflow

import (
	"time"

	"github.com/mbaumgart/perdiem/internal/expense"
	"github.com/mbaumgart/perdiem/pkg/backend"
	"github.com/mbaumgart/perdiem/pkg/pdf"
)

// State bag keys used by the audit graph.
const (
	KeySource     = "source"
	KeyPDFData    = "pdf_data"
	KeySections   = "sections"
	KeyAuditState = "audit_state"
	KeyUpdated    = "ticket_updated"
)

// AuditState accumulates the findings of the audit pipeline as it moves
// through the graph. Nodes read the fields produced by earlier nodes and
// write their own.
type AuditState struct {
	Header     expense.HeaderExtraction   `json:"header"`
	Invoices   expense.InvoicesExtraction `json:"invoices"`
	Summary    expense.SummaryExtraction  `json:"summary"`
	Allowances map[string]float64         `json:"allowances,omitempty"`
	Rate       expense.RateSelection      `json:"rate"`
	Periods    expense.PeriodComparison   `json:"periods"`
	Allowance  expense.AllowanceCheck     `json:"allowance"`
	Findings   expense.Findings           `json:"findings"`
	Decision   expense.Decision           `json:"decision"`

	Ticket *backend.Ticket `json:"-"`
}

// Result is the outcome of a completed audit run.
type Result struct {
	Source      string       `json:"source"`
	TicketID    *string      `json:"ticket_id"`
	Sections    pdf.Sections `json:"-"`
	State       AuditState   `json:"state"`
	Updated     bool         `json:"ticket_updated"`
	CompletedAt time.Time    `json:"completed_at"`
}
