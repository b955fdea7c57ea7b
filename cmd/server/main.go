package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/app"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/auth"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/batches"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/bootstrap"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/courses"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/dashboard"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/discountcodes"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/enrollments"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/expenses"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/paymentmethods"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/payments"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/payroll"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/platform/db"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/rbac"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/refunds"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/students"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/users"
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

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, tokens)

	rbacRepo := rbac.NewRepository(pool)
	rbacService := rbac.NewService(rbacRepo)
	guard := rbac.Middleware{Source: rbacService, Logger: logger}
	rbacHandler := rbac.NewHandler(logger, rbacService, guard)

	bootstrapService := bootstrap.NewService(bootstrap.NewStore(pool), cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	bootstrapHandler := bootstrap.NewHandler(logger, bootstrapService)

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, guard)

	studentsService := students.NewService(students.NewRepository(pool))
	studentsHandler := students.NewHandler(logger, studentsService, guard)

	coursesService := courses.NewService(courses.NewRepository(pool))
	coursesHandler := courses.NewHandler(logger, coursesService, guard)

	batchesService := batches.NewService(batches.NewRepository(pool))
	batchesHandler := batches.NewHandler(logger, batchesService, guard)

	discountService := discountcodes.NewService(discountcodes.NewRepository(pool))
	discountHandler := discountcodes.NewHandler(logger, discountService, guard)

	enrollmentsService := enrollments.NewService(enrollments.NewRepository(pool), batchesService, discountService)
	enrollmentsHandler := enrollments.NewHandler(logger, enrollmentsService, guard)

	methodsService := paymentmethods.NewService(paymentmethods.NewRepository(pool))
	methodsHandler := paymentmethods.NewHandler(logger, methodsService, guard)

	paymentsService := payments.NewService(payments.NewRepository(pool))
	paymentsHandler := payments.NewHandler(logger, paymentsService, guard)

	refundsService := refunds.NewService(refunds.NewRepository(pool))
	refundsHandler := refunds.NewHandler(logger, refundsService, guard)

	expensesService := expenses.NewService(expenses.NewRepository(pool))
	expensesHandler := expenses.NewHandler(logger, expensesService, guard)

	payrollService := payroll.NewService(payroll.NewRepository(pool))
	payrollHandler := payroll.NewHandler(logger, payrollService, guard)

	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), paymentsService, expensesService, payrollService, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, guard)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		Pool:                 pool,
		Tokens:               tokens,
		AuthHandler:          authHandler,
		UsersHandler:         usersHandler,
		RBACHandler:          rbacHandler,
		BootstrapHandler:     bootstrapHandler,
		StudentsHandler:      studentsHandler,
		CoursesHandler:       coursesHandler,
		BatchesHandler:       batchesHandler,
		EnrollmentsHandler:   enrollmentsHandler,
		DiscountCodesHandler: discountHandler,
		PaymentMethods:       methodsHandler,
		PaymentsHandler:      paymentsHandler,
		RefundsHandler:       refundsHandler,
		ExpensesHandler:      expensesHandler,
		PayrollHandler:       payrollHandler,
		DashboardHandler:     dashboardHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
