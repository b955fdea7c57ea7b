package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/app"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/dashboard"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/discountcodes"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/expenses"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/payments"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/payroll"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/platform/db"
	"github.com/obaida221/mushkilty-finance-system-backend/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	discountService := discountcodes.NewService(discountcodes.NewRepository(pool))
	sweepJob := jobs.NewDiscountSweepJob(discountService, logger)

	paymentsService := payments.NewService(payments.NewRepository(pool))
	expensesService := expenses.NewService(expenses.NewRepository(pool))
	payrollService := payroll.NewService(payroll.NewRepository(pool))
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), paymentsService, expensesService, payrollService, dashboardCache)
	refreshJob := jobs.NewDashboardRefreshJob(dashboardService, logger)

	refreshIQD, err := jobs.NewDashboardRefreshTask("IQD")
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}
	refreshUSD, err := jobs.NewDashboardRefreshTask("USD")
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDiscountCodeSweep, Handler: sweepJob.Handle},
			{Type: jobs.TaskDashboardRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 0 * * *", Task: jobs.NewDiscountCodeSweepTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 5 * * *", Task: refreshIQD, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "35 5 * * *", Task: refreshUSD, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
