// Package workflow implements the expense report audit pipeline as a state
// graph: extract report text, run staged model extractions, verify the
// figures deterministically, decide, and push the outcome to the ticket
// backend.
package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/mbaumgart/perdiem/internal/prompts"
	"github.com/mbaumgart/perdiem/pkg/backend"
)

// Runtime bundles the dependencies workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Agent   gaconfig.AgentConfig
	Backend backend.System
	Prompts prompts.System
	Logger  *slog.Logger
}
