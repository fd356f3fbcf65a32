package inspections

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/pagination"
)

// System defines the public contract for inspection domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Inspection], error)

	Find(ctx context.Context, id uuid.UUID) (*Inspection, error)
	Create(ctx context.Context, cmd CreateCommand) (*Inspection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Inspection, error)
	Photo(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
}
