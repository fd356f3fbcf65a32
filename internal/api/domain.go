package api

import (
	"fmt"

	"github.com/stormsift/stormsift/internal/analyses"
	"github.com/stormsift/stormsift/internal/checklists"
	"github.com/stormsift/stormsift/internal/ensemble"
	"github.com/stormsift/stormsift/internal/inspections"
	"github.com/stormsift/stormsift/internal/prompts"
	"github.com/stormsift/stormsift/internal/reports"
	"github.com/stormsift/stormsift/internal/vision"
	"github.com/stormsift/stormsift/internal/weather"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Inspections inspections.System
	Analyses    analyses.System
	Checklists  checklists.System
	Prompts     prompts.System
	Weather     weather.System
	Reports     reports.System
}

// NewDomain creates all domain systems from the API runtime, including the
// ensemble engine assembled from the configured vision backends.
func NewDomain(runtime *Runtime) (*Domain, error) {
	adapters, err := vision.NewAdapters(runtime.Vision.Models, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("build vision adapters: %w", err)
	}

	engine, err := ensemble.New(adapters, ensemble.Config{
		MinModels:       runtime.Vision.MinModels,
		ProbeTimeout:    runtime.Vision.ProbeTimeoutDuration(),
		ClassifyTimeout: runtime.Vision.ClassifyTimeoutDuration(),
	}, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("build ensemble engine: %w", err)
	}

	inspectionsSystem := inspections.New(
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

	weatherSystem := weather.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		engine,
		runtime.Logger,
		runtime.Pagination,
		runtime.Storage,
		inspectionsSystem,
		promptsSystem,
		weatherSystem,
	)

	checklistsSystem := checklists.New(
		runtime.Database.Connection(),
		analysesSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Storage,
		analysesSystem,
		runtime.Logger,
	)

	return &Domain{
		Inspections: inspectionsSystem,
		Analyses:    analysesSystem,
		Checklists:  checklistsSystem,
		Prompts:     promptsSystem,
		Weather:     weatherSystem,
		Reports:     reportsSystem,
	}, nil
}
