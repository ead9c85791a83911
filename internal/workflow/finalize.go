package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// FinalizeNode returns a state node that closes out the audit run. It exists
// as the single graph exit so both the updated and no-ticket paths converge
// before result extraction.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		as, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		updated := false
		if val, ok := s.Get(KeyUpdated); ok {
			updated, _ = val.(bool)
		}

		rt.Logger.InfoContext(
			ctx, "audit complete",
			"ticket_id", deref(as.Header.TicketID),
			"approve", as.Decision.Approve,
			"ticket_updated", updated,
		)

		return s, nil
	})
}
