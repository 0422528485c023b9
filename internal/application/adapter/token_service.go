// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

//go:generate mockgen -source=token_service.go -destination=mocks/token_service_mock.go -package=mocks

import (
	"context"
	"time"
)

// TokenClaims represents the claims contained in a backend-issued access token.
type TokenClaims struct {
	UserID    int64
	ExpiresAt time.Time
}

// TokenService defines the interface for access token checks.
// Tokens are issued by the BudgetWise backend; this service only reads them.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
