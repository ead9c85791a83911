package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/mbaumgart/perdiem/internal/expense"
)

// VerifyNode returns a state node that runs the deterministic checks over
// the extracted data: invoice sum against the summary total, header period
// against summary period, and the recomputed allowance against the claimed
// one. No model involvement; arithmetic is never delegated.
func VerifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		as, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("verify: %w", err)
		}

		as.Periods = expense.ComparePeriods(as.Header.TimePeriod, as.Summary.TimePeriod)
		as.Allowance = expense.CalculateAllowance(as.Periods, as.Rate.DailyRate, as.Summary.Allowance)

		as.Findings.TotalOK = expense.CheckTotal(&as.Invoices, &as.Summary)
		as.Findings.PeriodsMatch = as.Periods.Match
		as.Findings.AllowanceOK = as.Allowance.MatchesSummary

		rt.Logger.InfoContext(
			ctx, "verify node complete",
			"total_ok", as.Findings.TotalOK,
			"periods_match", as.Findings.PeriodsMatch,
			"allowance_ok", as.Findings.AllowanceOK,
			"trip_days", as.Allowance.Days,
		)

		s = s.Set(KeyAuditState, *as)
		return s, nil
	})
}
