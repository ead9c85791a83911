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

// RateNode returns a state node that matches the travel destination against
// the allowance rate table. Destination names in reports rarely match the
// table keys exactly (suburbs, airport codes, free-form spellings), so the
// match is delegated to the model. A missing destination skips the call and
// leaves the selection empty.
func RateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		as, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("rate: %w: %w", ErrRateFailed, err)
		}

		if as.Header.Destination == nil || *as.Header.Destination == "" {
			rt.Logger.InfoContext(ctx, "rate node skipped", "reason", "no destination")
			return s, nil
		}

		selection, err := selectRate(ctx, rt, as)
		if err != nil {
			return s, fmt.Errorf("rate: %w", err)
		}
		as.Rate = *selection

		rt.Logger.InfoContext(
			ctx, "rate node complete",
			"destination", deref(as.Header.Destination),
			"matched_city", deref(as.Rate.MatchedCity),
		)

		s = s.Set(KeyAuditState, *as)
		return s, nil
	})
}

func selectRate(ctx context.Context, rt *Runtime, as *AuditState) (*expense.RateSelection, error) {
	rates, err := json.MarshalIndent(as.Allowances, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: serialize allowances: %w", ErrRateFailed, err)
	}

	payload := fmt.Sprintf(
		"Travel destination: %s\n\nDaily allowance rates by city:\n\n%s",
		*as.Header.Destination, rates,
	)

	prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageRate, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateFailed, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrRateFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrRateFailed, err)
	}

	selection, err := formatting.Parse[expense.RateSelection](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrRateFailed, err)
	}

	// Guard against hallucinated cities: the match must come from the table.
	if selection.MatchedCity != nil {
		rate, ok := as.Allowances[*selection.MatchedCity]
		if !ok {
			selection.MatchedCity = nil
			selection.DailyRate = nil
		} else {
			selection.DailyRate = &rate
		}
	}

	return &selection, nil
}
