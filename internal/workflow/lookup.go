package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/mbaumgart/perdiem/pkg/backend"
)

// LookupNode returns a state node that loads the allowance rate table and
// resolves the ticket referenced by the report header. A missing ticket is
// a finding, not a failure: the audit continues and ends in rejection with
// no status pushed. An unreachable allowance endpoint degrades the same
// way: the run continues against an empty rate table.
func LookupNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		as, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("lookup: %w: %w", ErrLookupFailed, err)
		}

		as.Allowances = fetchAllowances(ctx, rt)

		if as.Header.TicketID != nil && *as.Header.TicketID != "" {
			ticket, err := rt.Backend.FindTicket(ctx, *as.Header.TicketID)
			switch {
			case errors.Is(err, backend.ErrTicketNotFound):
				as.Findings.TicketFound = false
			case err != nil:
				return s, fmt.Errorf("lookup: %w: %w", ErrLookupFailed, err)
			default:
				as.Ticket = ticket
				as.Findings.TicketFound = true
			}
		}

		rt.Logger.InfoContext(
			ctx, "lookup node complete",
			"allowance_entries", len(as.Allowances),
			"ticket_id", deref(as.Header.TicketID),
			"ticket_found", as.Findings.TicketFound,
		)

		s = s.Set(KeyAuditState, *as)
		return s, nil
	})
}

// fetchAllowances loads the rate table, falling back to an empty table when
// the backend is unreachable. With no rates the rate stage cannot match a
// city, the allowance check fails, and the run ends in a deterministic
// rejection instead of aborting.
func fetchAllowances(ctx context.Context, rt *Runtime) map[string]float64 {
	allowances, err := rt.Backend.Allowances(ctx)
	if err != nil {
		rt.Logger.WarnContext(
			ctx, "allowance lookup failed, continuing with empty rate table",
			"error", err,
		)
		return map[string]float64{}
	}
	return allowances
}
