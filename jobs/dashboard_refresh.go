package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/dashboard"
)

// DashboardRefreshJob rebuilds the cached dashboard aggregates so the first
// morning request does not pay the query fan-out.
type DashboardRefreshJob struct {
	service *dashboard.Service
	logger  *slog.Logger
}

func NewDashboardRefreshJob(service *dashboard.Service, logger *slog.Logger) *DashboardRefreshJob {
	return &DashboardRefreshJob{service: service, logger: logger}
}

func (j *DashboardRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload DashboardRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Currency == "" {
		payload.Currency = "IQD"
	}
	if err := j.service.Refresh(ctx, payload.Currency); err != nil {
		j.logger.Error("dashboard refresh", slog.String("currency", payload.Currency), slog.Any("error", err))
		return err
	}
	j.logger.Info("dashboard refresh complete", slog.String("currency", payload.Currency))
	return nil
}
