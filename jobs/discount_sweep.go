package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/discountcodes"
)

// DiscountSweepJob expires discount codes whose valid_to has passed.
type DiscountSweepJob struct {
	service *discountcodes.Service
	logger  *slog.Logger
}

func NewDiscountSweepJob(service *discountcodes.Service, logger *slog.Logger) *DiscountSweepJob {
	return &DiscountSweepJob{service: service, logger: logger}
}

func (j *DiscountSweepJob) Handle(ctx context.Context, _ *asynq.Task) error {
	swept, err := j.service.SweepExpired(ctx)
	if err != nil {
		j.logger.Error("discount code sweep", slog.Any("error", err))
		return err
	}
	if swept > 0 {
		j.logger.Info("discount code sweep", slog.Int64("deactivated", swept))
	}
	return nil
}
