package analyses

import (
	"context"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/pagination"
)

// System defines the public contract for analysis domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	FindByInspection(ctx context.Context, inspectionID uuid.UUID) (*Analysis, error)
	Analyze(ctx context.Context, inspectionID uuid.UUID) (*Analysis, error)
	Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
