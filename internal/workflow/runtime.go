package workflow

import (
	"log/slog"

	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/internal/inspections"
	"github.com/stormsift/stormsift/internal/prompts"
	"github.com/stormsift/stormsift/internal/weather"
	"github.com/stormsift/stormsift/pkg/storage"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and domain systems.
type Runtime struct {
	Engine      *ensemble.Engine
	Storage     storage.System
	Inspections inspections.System
	Prompts     prompts.System
	Weather     weather.System
	Logger      *slog.Logger
}
