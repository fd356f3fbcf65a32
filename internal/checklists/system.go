package checklists

import (
	"context"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/pagination"
)

// System defines the public contract for checklist domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Checklist], error)

	Find(ctx context.Context, id uuid.UUID) (*Checklist, error)
	FindByInspection(ctx context.Context, inspectionID uuid.UUID) (*Checklist, error)
	Create(ctx context.Context, cmd CreateCommand) (*Checklist, error)
	Generate(ctx context.Context, analysisID uuid.UUID) (*Checklist, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Checklist, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
