package api

import (
	"net/http"

	"github.com/mbaumgart/perdiem/internal/config"
	"github.com/mbaumgart/perdiem/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Reports.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	routes.Register(mux, domain.Audits.Handler().Routes())
	routes.Register(mux, domain.Prompts.Handler().Routes())

	be := newBackendHandler(runtime.Backend, runtime.Logger)
	routes.Register(mux, be.routes())
}
