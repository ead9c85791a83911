package audits

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbaumgart/perdiem/pkg/pagination"
)

// System defines the public contract for audit domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Audit], error)

	Find(ctx context.Context, id uuid.UUID) (*Audit, error)
	FindByReport(ctx context.Context, reportID uuid.UUID) (*Audit, error)

	// Audit runs the workflow against the report's stored PDF and persists
	// the outcome. Re-auditing replaces the previous outcome and clears any
	// review fields.
	Audit(ctx context.Context, reportID uuid.UUID) (*Audit, error)

	Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Audit, error)
	Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*Audit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
