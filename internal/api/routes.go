package api

import (
	"net/http"

	"github.com/stormsift/stormsift/internal/config"
	"github.com/stormsift/stormsift/pkg/openapi"
	"github.com/stormsift/stormsift/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	routes.Register(
		mux,
		domain.Inspections.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
	routes.Register(mux, domain.Analyses.Handler().Routes())
	routes.Register(mux, domain.Checklists.Handler().Routes())
	routes.Register(mux, domain.Prompts.Handler().Routes())
	routes.Register(mux, domain.Weather.Handler().Routes())
	routes.Register(mux, domain.Reports.Handler().Routes())

	storageHandler := newStorageHandler(runtime.Storage, runtime.Logger)
	routes.Register(mux, storageHandler.routes())

	specBytes, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
