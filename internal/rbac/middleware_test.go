package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

type stubSource struct {
	granted map[int64][]string
	err     error
	calls   int
}

func (s *stubSource) GrantedNames(ctx context.Context, roleID int64) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.granted[roleID], nil
}

func callGuard(t *testing.T, source PermissionSource, claims *shared.Claims, perms ...string) *httptest.ResponseRecorder {
	t.Helper()
	guard := Middleware{Source: source}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if claims != nil {
		req = req.WithContext(shared.ContextWithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	guard.RequirePermissions(perms...)(next).ServeHTTP(rec, req)
	return rec
}

func TestGuardNoClaims(t *testing.T) {
	rec := callGuard(t, &stubSource{}, nil, "payments:read")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardEmptyRequirementAllowsAuthenticated(t *testing.T) {
	source := &stubSource{}
	rec := callGuard(t, source, &shared.Claims{UserID: 1})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, source.calls)
}

func TestGuardNoRole(t *testing.T) {
	rec := callGuard(t, &stubSource{}, &shared.Claims{UserID: 1}, "payments:read")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "no role set")
}

func TestGuardAllGranted(t *testing.T) {
	roleID := int64(2)
	source := &stubSource{granted: map[int64][]string{2: {"payments:read", "payments:create"}}}
	rec := callGuard(t, source, &shared.Claims{UserID: 1, RoleID: &roleID}, "payments:read", "payments:create")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardPartialGrantDenied(t *testing.T) {
	roleID := int64(2)
	source := &stubSource{granted: map[int64][]string{2: {"payments:read"}}}
	rec := callGuard(t, source, &shared.Claims{UserID: 1, RoleID: &roleID}, "payments:read", "payments:delete")
	// Holding one of two required permissions is not enough.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "payments:delete")
	assert.NotContains(t, rec.Body.String(), "payments:read,")
}

func TestGuardMissingNamed(t *testing.T) {
	roleID := int64(5)
	source := &stubSource{granted: map[int64][]string{5: {}}}
	rec := callGuard(t, source, &shared.Claims{UserID: 1, RoleID: &roleID}, "expenses:update")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing permissions: expenses:update")
}

func TestGuardSourceErrorFailsClosed(t *testing.T) {
	roleID := int64(2)
	source := &stubSource{err: errors.New("connection refused")}
	rec := callGuard(t, source, &shared.Claims{UserID: 1, RoleID: &roleID}, "payments:read")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGuardFreshLookupPerRequest(t *testing.T) {
	roleID := int64(2)
	source := &stubSource{granted: map[int64][]string{2: {"payments:read"}}}
	claims := &shared.Claims{UserID: 1, RoleID: &roleID}

	rec := callGuard(t, source, claims, "payments:read")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Revoke and check the next request sees it immediately.
	source.granted[2] = nil
	rec = callGuard(t, source, claims, "payments:read")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 2, source.calls)
}
