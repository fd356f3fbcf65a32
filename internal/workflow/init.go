package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/stormsift/stormsift/internal/ensemble"
)

// InitNode returns a state node that loads the inspection record and
// downloads its photo from blob storage into the workflow state bag.
func InitNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		inspectionID, err := stateValue[uuid.UUID](s, KeyInspectionID)
		if err != nil {
			return s, fmt.Errorf("init: %w", err)
		}

		inspection, err := rt.Inspections.Find(ctx, inspectionID)
		if err != nil {
			return s, fmt.Errorf("init: %w: %w", ErrInspectionNotFound, err)
		}

		blob, err := rt.Storage.Download(ctx, inspection.StorageKey)
		if err != nil {
			return s, fmt.Errorf("init: %w: %w", ErrPhotoFetchFailed, err)
		}
		defer blob.Close()

		data, err := io.ReadAll(blob)
		if err != nil {
			return s, fmt.Errorf("init: %w: read blob: %w", ErrPhotoFetchFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "init node complete",
			"inspection_id", inspectionID,
			"size_bytes", len(data),
		)

		s = s.Set(KeySiteID, inspection.SiteID)
		s = s.Set(KeyImage, ensemble.Image{
			Data:        data,
			ContentType: inspection.ContentType,
		})

		return s, nil
	})
}
