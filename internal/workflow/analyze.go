package workflow

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/mbaumgart/perdiem/internal/expense"
	"github.com/mbaumgart/perdiem/internal/prompts"
	"github.com/mbaumgart/perdiem/pkg/formatting"
	"github.com/mbaumgart/perdiem/pkg/pdf"
)

// AnalyzeNode returns a state node that runs the three section extractions
// concurrently using bounded errgroup concurrency. Each goroutine creates
// its own agent, composes the stage prompt with the section text, and parses
// the structured response. Results are merged into a fresh AuditState.
func AnalyzeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		sectionsVal, ok := s.Get(KeySections)
		if !ok {
			return s, fmt.Errorf("analyze: %w: missing %s in state", ErrAnalyzeFailed, KeySections)
		}

		sections, ok := sectionsVal.(pdf.Sections)
		if !ok {
			return s, fmt.Errorf("analyze: %w: %s is not pdf.Sections", ErrAnalyzeFailed, KeySections)
		}

		as, err := analyzeSections(ctx, rt, &sections)
		if err != nil {
			return s, fmt.Errorf("analyze: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "analyze node complete",
			"destination", deref(as.Header.Destination),
			"ticket_id", deref(as.Header.TicketID),
			"invoice_count", len(as.Invoices.Invoices),
			"summary_total", as.Summary.Total,
		)

		s = s.Set(KeyAuditState, *as)
		return s, nil
	})
}

func analyzeSections(ctx context.Context, rt *Runtime, sections *pdf.Sections) (*AuditState, error) {
	var (
		mu sync.Mutex
		as AuditState
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(3))

	g.Go(func() error {
		header, err := analyzeSection[expense.HeaderExtraction](
			gctx, rt, prompts.StageHeader, sections.Header,
		)
		if err != nil {
			return err
		}

		mu.Lock()
		as.Header = *header
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		invoices, err := analyzeSection[expense.InvoicesExtraction](
			gctx, rt, prompts.StageInvoices, sections.Invoices,
		)
		if err != nil {
			return err
		}

		mu.Lock()
		as.Invoices = *invoices
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		summary, err := analyzeSection[expense.SummaryExtraction](
			gctx, rt, prompts.StageSummary, sections.Summary,
		)
		if err != nil {
			return err
		}

		mu.Lock()
		as.Summary = *summary
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalyzeFailed, err)
	}

	return &as, nil
}

// analyzeSection runs a single stage extraction. An empty section still goes
// through the model so the stage produces its zero-value shape (empty
// invoice list, zeroed totals) rather than failing the run.
func analyzeSection[T any](
	ctx context.Context,
	rt *Runtime,
	stage prompts.Stage,
	text string,
) (*T, error) {
	prompt, err := ComposePrompt(ctx, rt.Prompts, stage, sectionPayload(stage, text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return nil, fmt.Errorf("%s: create agent: %w", stage, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: chat call: %w", stage, err)
	}

	parsed, err := formatting.Parse[T](resp.Content())
	if err != nil {
		return nil, fmt.Errorf("%s: parse response: %w", stage, err)
	}

	return &parsed, nil
}

func sectionPayload(stage prompts.Stage, text string) string {
	return fmt.Sprintf("Report %s section:\n\n%s", stage, text)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
