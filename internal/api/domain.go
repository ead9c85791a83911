package api

import (
	"github.com/mbaumgart/perdiem/internal/audits"
	"github.com/mbaumgart/perdiem/internal/prompts"
	"github.com/mbaumgart/perdiem/internal/reports"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Reports reports.System
	Audits  audits.System
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	auditsSystem := audits.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Logger,
		runtime.Pagination,
		runtime.Backend,
		reportsSystem,
		promptsSystem,
	)

	return &Domain{
		Reports: reportsSystem,
		Audits:  auditsSystem,
		Prompts: promptsSystem,
	}
}
