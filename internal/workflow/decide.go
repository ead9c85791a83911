package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/mbaumgart/perdiem/internal/expense"
	"github.com/mbaumgart/perdiem/internal/prompts"
	"github.com/mbaumgart/perdiem/pkg/formatting"
)

// DecideNode returns a state node that produces the approval decision. The
// approval boolean is derived from the deterministic findings, never from
// the model: the model only writes the reviewer-facing comment. A model
// response that disagrees with the findings is overridden.
func DecideNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		as, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("decide: %w: %w", ErrDecideFailed, err)
		}

		decision, err := decide(ctx, rt, as)
		if err != nil {
			return s, fmt.Errorf("decide: %w", err)
		}
		as.Decision = *decision

		rt.Logger.InfoContext(
			ctx, "decide node complete",
			"approve", as.Decision.Approve,
			"comment", as.Decision.Comment,
		)

		s = s.Set(KeyAuditState, *as)
		return s, nil
	})
}

func decide(ctx context.Context, rt *Runtime, as *AuditState) (*expense.Decision, error) {
	approve := as.Findings.Approvable()

	payload, err := decisionPayload(as)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecideFailed, err)
	}

	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageDecision, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecideFailed, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrDecideFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrDecideFailed, err)
	}

	decision, err := formatting.Parse[expense.Decision](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrDecideFailed, err)
	}

	if decision.Approve != approve {
		rt.Logger.WarnContext(
			ctx, "model decision overridden",
			"model_approve", decision.Approve,
			"findings_approve", approve,
		)
	}
	decision.Approve = approve

	if decision.Comment == "" {
		decision.Comment = fallbackComment(as)
	}

	return &decision, nil
}

func decisionPayload(as *AuditState) (string, error) {
	summary := struct {
		Findings  expense.Findings         `json:"findings"`
		Periods   expense.PeriodComparison `json:"periods"`
		Allowance expense.AllowanceCheck   `json:"allowance"`
		Claimed   float64                  `json:"claimed_total"`
		Invoiced  float64                  `json:"invoiced_total"`
	}{
		Findings:  as.Findings,
		Periods:   as.Periods,
		Allowance: as.Allowance,
		Claimed:   as.Summary.Total,
		Invoiced:  as.Invoices.Sum(),
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize findings: %w", err)
	}

	return "Audit findings:\n\n" + string(data), nil
}

func fallbackComment(as *AuditState) string {
	if as.Findings.Approvable() {
		return "All checks passed."
	}

	switch {
	case !as.Findings.TicketFound:
		return "No matching travel ticket was found for this report."
	case !as.Findings.TotalOK:
		return "The invoice amounts do not add up to the claimed total."
	case !as.Findings.PeriodsMatch:
		return "The travel periods in the header and summary do not match."
	default:
		return "The claimed allowance does not match the expected daily rate calculation."
	}
}
