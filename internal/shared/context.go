package shared

import "context"

// Claims describes the authenticated caller as decoded from a bearer token.
// RoleID is nil when the account has no role assigned; every permission
// check fails closed in that case.
type Claims struct {
	UserID int64
	Email  string
	RoleID *int64
}

type claimsContextKey struct{}

// ContextWithClaims stores the decoded token claims in context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts token claims from context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}
