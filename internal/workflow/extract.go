package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/mbaumgart/perdiem/pkg/pdf"
)

// ExtractNode returns a state node that extracts the plain text of the
// report PDF and splits it into header, invoices, and summary sections.
// Reports missing the section markers keep all text in the header so the
// downstream stages still see the full document.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		dataVal, ok := s.Get(KeyPDFData)
		if !ok {
			return s, fmt.Errorf("extract: %w: missing %s in state", ErrExtractFailed, KeyPDFData)
		}

		data, ok := dataVal.([]byte)
		if !ok {
			return s, fmt.Errorf("extract: %w: %s is not []byte", ErrExtractFailed, KeyPDFData)
		}

		sections, err := pdf.Extract(data)
		if err != nil {
			return s, fmt.Errorf("extract: %w: %w", ErrExtractFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"header_len", len(sections.Header),
			"invoices_len", len(sections.Invoices),
			"summary_len", len(sections.Summary),
		)

		s = s.Set(KeySections, *sections)
		return s, nil
	})
}
