package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbaumgart/perdiem/pkg/pagination"
)

// System defines the public contract for report domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Report], error)

	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	Create(ctx context.Context, cmd CreateCommand) (*Report, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Download returns the report record and its raw PDF bytes.
	Download(ctx context.Context, id uuid.UUID) (*Report, []byte, error)
}
