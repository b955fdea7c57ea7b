package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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
	"github.com/obaida221/mushkilty-finance-system-backend/internal/platform/httpx"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/rbac"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/refunds"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/students"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	Pool                 *pgxpool.Pool
	Tokens               *auth.TokenManager
	AuthHandler          *auth.Handler
	UsersHandler         *users.Handler
	RBACHandler          *rbac.Handler
	BootstrapHandler     *bootstrap.Handler
	StudentsHandler      *students.Handler
	CoursesHandler       *courses.Handler
	BatchesHandler       *batches.Handler
	EnrollmentsHandler   *enrollments.Handler
	DiscountCodesHandler *discountcodes.Handler
	PaymentMethods       *paymentmethods.Handler
	PaymentsHandler      *payments.Handler
	RefundsHandler       *refunds.Handler
	ExpensesHandler      *expenses.Handler
	PayrollHandler       *payroll.Handler
	DashboardHandler     *dashboard.Handler
}

// NewRouter constructs the chi.Router with the default middleware chain,
// the public auth and bootstrap surfaces, and the authenticated API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := params.Pool.Ping(req.Context()); err != nil {
			httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "database unreachable")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/bootstrap", params.BootstrapHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(params.Tokens))

		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/roles", params.RBACHandler.MountRoleRoutes)
		r.Route("/permissions", params.RBACHandler.MountPermissionRoutes)
		r.Route("/students", params.StudentsHandler.MountRoutes)
		r.Route("/courses", params.CoursesHandler.MountRoutes)
		r.Route("/batches", params.BatchesHandler.MountRoutes)
		r.Route("/enrollments", params.EnrollmentsHandler.MountRoutes)
		r.Route("/discount-codes", params.DiscountCodesHandler.MountRoutes)
		r.Route("/payment-methods", params.PaymentMethods.MountRoutes)
		r.Route("/payments", params.PaymentsHandler.MountRoutes)
		r.Route("/refunds", params.RefundsHandler.MountRoutes)
		r.Route("/expenses", params.ExpensesHandler.MountRoutes)
		r.Route("/payrolls", params.PayrollHandler.MountRoutes)
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
	})

	return r
}
