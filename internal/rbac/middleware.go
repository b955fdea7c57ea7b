package rbac

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/platform/httpx"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// PermissionSource loads the permission names granted to a role.
type PermissionSource interface {
	GrantedNames(ctx context.Context, roleID int64) ([]string, error)
}

// Middleware gates protected operations behind declared permission sets.
type Middleware struct {
	Source PermissionSource
	Logger *slog.Logger
}

// RequirePermissions ensures the caller holds every one of the required
// permissions. An empty requirement allows any authenticated caller. A
// caller without a role is denied regardless of any other state.
func (m Middleware) RequirePermissions(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := shared.ClaimsFromContext(r.Context())
			if claims == nil {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			if len(perms) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			if claims.RoleID == nil {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "access denied: no role set")
				return
			}
			granted, err := m.Source.GrantedNames(r.Context(), *claims.RoleID)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("load role permissions", slog.Any("error", err), slog.Int64("role_id", *claims.RoleID))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if missing := missingPermissions(granted, perms); len(missing) > 0 {
				httpx.Problem(w, http.StatusForbidden, "Forbidden",
					"access denied: missing permissions: "+strings.Join(missing, ", "))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// missingPermissions returns the required names absent from the granted
// set. Access is allowed only when the result is empty: all required
// permissions must be held, not merely one.
func missingPermissions(granted, required []string) []string {
	set := make(map[string]struct{}, len(granted))
	for _, name := range granted {
		set[name] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		if _, ok := set[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
