package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/platform/httpx"
)

// Handler exposes the administrative seed trigger.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers bootstrap routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/seed", h.handleSeed)
}

// handleSeed runs the seeder. Failures are fatal to this call only; the
// serving process keeps running and a later retry completes the rest.
func (h *Handler) handleSeed(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Run(r.Context())
	if err != nil {
		h.logger.Error("bootstrap seed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Seeding Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
