package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// UpdateNode returns a state node that writes the audit outcome back to the
// ticket backend. Only reached when the referenced ticket was found.
func UpdateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		as, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("update: %w: %w", ErrUpdateFailed, err)
		}

		if as.Ticket == nil {
			return s, fmt.Errorf("update: %w: no ticket in state", ErrUpdateFailed)
		}

		as.Ticket.SetStatus(as.Decision.Approve, as.Decision.Comment)

		if err := rt.Backend.UpdateTicket(ctx, as.Ticket); err != nil {
			return s, fmt.Errorf("update: %w: %w", ErrUpdateFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "update node complete",
			"ticket_id", as.Ticket.ID,
			"status", as.Ticket.Status(),
		)

		s = s.Set(KeyAuditState, *as)
		s = s.Set(KeyUpdated, true)
		return s, nil
	})
}
