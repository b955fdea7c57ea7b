package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/obaida221/mushkilty-finance-system-backend/internal/shared"
)

// tokenClaims is the wire format of the bearer token payload.
type tokenClaims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	RoleID *int64 `json:"role"`
}

// TokenManager issues and verifies HS256 signed bearer tokens. Tokens are
// the complete credential; no server-side session state exists.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user's id, email and role reference.
func (m *TokenManager) Issue(user *User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email:  user.Email,
		RoleID: user.RoleID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning the caller claims.
// Expired or badly signed tokens fail with ErrUnauthorized.
func (m *TokenManager) Verify(raw string) (*shared.Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, shared.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	return &shared.Claims{
		UserID: userID,
		Email:  claims.Email,
		RoleID: claims.RoleID,
	}, nil
}
