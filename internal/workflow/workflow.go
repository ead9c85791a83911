package workflow

import (
	"context"
	"fmt"
	"runtime"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/mbaumgart/perdiem/pkg/pdf"
)

// Execute runs the audit workflow for a single expense report. It builds the
// state graph (extract → analyze → lookup → rate → verify → decide →
// update? → finalize), executes it against the raw PDF data, and extracts
// the Result from the final state. The update node only runs when the
// backend ticket referenced by the report was found.
func Execute(ctx context.Context, rt *Runtime, source string, data []byte) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeySource, source)
	initialState = initialState.Set(KeyPDFData, data)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("perdiem-audit")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := map[string]state.StateNode{
		"extract":  ExtractNode(rt),
		"analyze":  AnalyzeNode(rt),
		"lookup":   LookupNode(rt),
		"rate":     RateNode(rt),
		"verify":   VerifyNode(rt),
		"decide":   DecideNode(rt),
		"update":   UpdateNode(rt),
		"finalize": FinalizeNode(rt),
	}

	for name, node := range nodes {
		if err := graph.AddNode(name, node); err != nil {
			return nil, err
		}
	}

	// Linear spine through the analysis and verification stages.
	spine := [][2]string{
		{"extract", "analyze"},
		{"analyze", "lookup"},
		{"lookup", "rate"},
		{"rate", "verify"},
		{"verify", "decide"},
	}

	for _, edge := range spine {
		if err := graph.AddEdge(edge[0], edge[1], nil); err != nil {
			return nil, err
		}
	}

	// decide → update (only when the referenced ticket exists)
	if err := graph.AddEdge("decide", "update", ticketFound); err != nil {
		return nil, err
	}

	// decide → finalize (nothing to push without a ticket)
	if err := graph.AddEdge("decide", "finalize", state.Not(ticketFound)); err != nil {
		return nil, err
	}

	// update → finalize (unconditional)
	if err := graph.AddEdge("update", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("extract"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	as, err := extractAuditState(s)
	if err != nil {
		return nil, err
	}

	sourceVal, ok := s.Get(KeySource)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeySource)
	}

	source, ok := sourceVal.(string)
	if !ok {
		return nil, fmt.Errorf("%s is not string", KeySource)
	}

	sectionsVal, ok := s.Get(KeySections)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeySections)
	}

	sections, ok := sectionsVal.(pdf.Sections)
	if !ok {
		return nil, fmt.Errorf("%s is not pdf.Sections", KeySections)
	}

	updated := false
	if val, ok := s.Get(KeyUpdated); ok {
		updated, _ = val.(bool)
	}

	return &Result{
		Source:      source,
		TicketID:    as.Header.TicketID,
		Sections:    sections,
		State:       *as,
		Updated:     updated,
		CompletedAt: time.Now(),
	}, nil
}

func extractAuditState(s state.State) (*AuditState, error) {
	val, ok := s.Get(KeyAuditState)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyAuditState)
	}

	as, ok := val.(AuditState)
	if !ok {
		return nil, fmt.Errorf("%s is not AuditState", KeyAuditState)
	}

	return &as, nil
}

func ticketFound(s state.State) bool {
	as, err := extractAuditState(s)
	if err != nil {
		return false
	}

	return as.Findings.TicketFound && as.Ticket != nil
}

func workerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
