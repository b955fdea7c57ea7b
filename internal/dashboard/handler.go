package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/platform/httpx"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/rbac"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   rbac.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.guard.RequirePermissions(shared.PermDashboardRead)).Get("/stats", h.stats)
	r.With(h.guard.RequirePermissions(shared.PermDashboardRead)).Get("/revenue-chart", h.revenueChart)
	r.With(h.guard.RequirePermissions(shared.PermDashboardRead)).Get("/enrollment-chart", h.enrollmentChart)
	r.With(h.guard.RequirePermissions(shared.PermDashboardRead)).Get("/recent-payments", h.recentPayments)
	r.With(h.guard.RequirePermissions(shared.PermDashboardRead)).Get("/method-distribution", h.methodDistribution)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) revenueChart(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	points, err := h.service.RevenueChart(r.Context(), r.URL.Query().Get("currency"), months)
	if err != nil {
		h.logger.Error("dashboard revenue chart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

func (h *Handler) enrollmentChart(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	counts, err := h.service.EnrollmentChart(r.Context(), months)
	if err != nil {
		h.logger.Error("dashboard enrollment chart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, counts)
}

func (h *Handler) recentPayments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recent, err := h.service.RecentPayments(r.Context(), limit)
	if err != nil {
		h.logger.Error("dashboard recent payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recent)
}

func (h *Handler) methodDistribution(w http.ResponseWriter, r *http.Request) {
	shares, err := h.service.MethodDistribution(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		h.logger.Error("dashboard method distribution", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, shares)
}
