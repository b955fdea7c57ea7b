package auth

import (
	"net/http"
	"strings"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/platform/httpx"
	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// RequireAuth verifies the bearer token and attaches the decoded claims to
// the request context. Requests without a valid token never reach the
// wrapped handler.
func RequireAuth(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			claims, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			ctx := shared.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
