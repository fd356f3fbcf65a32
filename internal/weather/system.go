package weather

import (
	"context"

	"github.com/google/uuid"

	"github.com/stormsift/stormsift/pkg/pagination"
)

// System defines the public contract for weather domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Observation], error)

	Find(ctx context.Context, id uuid.UUID) (*Observation, error)
	Create(ctx context.Context, cmd CreateCommand) (*Observation, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Status(ctx context.Context, siteID uuid.UUID) (*RainStatus, error)
	RainTriggered(ctx context.Context, siteID uuid.UUID) (bool, error)
}
