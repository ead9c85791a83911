package workflow

import (
	"strings"
	"testing"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/mbaumgart/perdiem/internal/expense"
	"github.com/mbaumgart/perdiem/pkg/backend"
)

func allPassing() *AuditState {
	return &AuditState{
		Findings: expense.Findings{
			TicketFound:  true,
			TotalOK:      true,
			PeriodsMatch: true,
			AllowanceOK:  true,
		},
	}
}

func TestFallbackComment(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AuditState)
		want   string
	}{
		{
			"all passing",
			func(as *AuditState) {},
			"All checks passed.",
		},
		{
			"missing ticket",
			func(as *AuditState) { as.Findings.TicketFound = false },
			"ticket",
		},
		{
			"total mismatch",
			func(as *AuditState) { as.Findings.TotalOK = false },
			"total",
		},
		{
			"period mismatch",
			func(as *AuditState) { as.Findings.PeriodsMatch = false },
			"periods",
		},
		{
			"allowance mismatch",
			func(as *AuditState) { as.Findings.AllowanceOK = false },
			"allowance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := allPassing()
			tt.mutate(as)
			got := fallbackComment(as)
			if !strings.Contains(got, tt.want) {
				t.Errorf("fallbackComment = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestDecisionPayload(t *testing.T) {
	as := allPassing()
	as.Summary.Total = 765
	as.Invoices.Invoices = []expense.Invoice{{Amount: 565}, {Amount: 200}}

	payload, err := decisionPayload(as)
	if err != nil {
		t.Fatalf("decisionPayload error: %v", err)
	}

	for _, want := range []string{
		`"claimed_total": 765`,
		`"invoiced_total": 765`,
		`"ticket_found": true`,
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q:\n%s", want, payload)
		}
	}
}

func TestTicketFound(t *testing.T) {
	t.Run("found with ticket", func(t *testing.T) {
		as := allPassing()
		as.Ticket = &backend.Ticket{ID: "TR-1", Fields: map[string]any{}}
		s := state.New(nil).Set(KeyAuditState, *as)
		if !ticketFound(s) {
			t.Error("ticketFound = false, want true")
		}
	})

	t.Run("finding set but ticket missing", func(t *testing.T) {
		as := allPassing()
		s := state.New(nil).Set(KeyAuditState, *as)
		if ticketFound(s) {
			t.Error("ticketFound = true without ticket record")
		}
	})

	t.Run("not found", func(t *testing.T) {
		as := allPassing()
		as.Findings.TicketFound = false
		as.Ticket = &backend.Ticket{ID: "TR-1", Fields: map[string]any{}}
		s := state.New(nil).Set(KeyAuditState, *as)
		if ticketFound(s) {
			t.Error("ticketFound = true with failed finding")
		}
	})

	t.Run("missing audit state", func(t *testing.T) {
		if ticketFound(state.New(nil)) {
			t.Error("ticketFound = true on empty state")
		}
	})
}

func TestWorkerCount(t *testing.T) {
	if got := workerCount(0); got != 1 {
		t.Errorf("workerCount(0) = %d, want 1", got)
	}
	if got := workerCount(3); got < 1 || got > 3 {
		t.Errorf("workerCount(3) = %d, want between 1 and 3", got)
	}
}
