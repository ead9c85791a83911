// Package api assembles the HTTP surface: domain handlers, backend proxy
// routes, and the middleware stack, mounted under the configured base path.
package api

import (
	"net/http"

	"github.com/mbaumgart/perdiem/internal/config"
	"github.com/mbaumgart/perdiem/internal/infrastructure"
	"github.com/mbaumgart/perdiem/pkg/middleware"
	"github.com/mbaumgart/perdiem/pkg/module"
)

// NewModule builds the API module. Middleware order matters: CORS wraps
// auth wraps logging, so preflight requests short-circuit before auth runs.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Auth(&cfg.API.Auth, runtime.Logger))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
