package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbaumgart/perdiem/pkg/backend"
	"github.com/mbaumgart/perdiem/pkg/handlers"
	"github.com/mbaumgart/perdiem/pkg/routes"
)

// backendHandler proxies read-only lookups against the ticket backend so
// API consumers can inspect allowance rates and ticket state without
// holding backend credentials.
type backendHandler struct {
	backend backend.System
	logger  *slog.Logger
}

func newBackendHandler(be backend.System, logger *slog.Logger) *backendHandler {
	return &backendHandler{
		backend: be,
		logger:  logger.With("handler", "backend"),
	}
}

func (h *backendHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/backend",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/allowances", Handler: h.allowances},
			{Method: "GET", Pattern: "/tickets/{id}", Handler: h.ticket},
		},
	}
}

func (h *backendHandler) allowances(w http.ResponseWriter, r *http.Request) {
	rates, err := h.backend.Allowances(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rates)
}

func (h *backendHandler) ticket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.backend.FindTicket(r.Context(), r.PathValue("id"))
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, backend.ErrTicketNotFound) {
			status = http.StatusNotFound
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ticket.Fields)
}
