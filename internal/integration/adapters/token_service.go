// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/budgetwise/statistics/internal/application/adapter"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// tokenLeeway absorbs clock drift between this service and the backend.
const tokenLeeway = 30 * time.Second

// BackendClaims are the claims of a BudgetWise backend access token.
// The backend stores the numeric user ID as a string in "sub".
type BackendClaims struct {
	jwt.RegisteredClaims
}

// TokenService implements adapter.TokenService for backend-issued HS256 tokens.
type TokenService struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenService creates a new token service instance.
// With an empty secret the signature is not checked and tokens are only
// decoded; the backend still verifies them when they are forwarded.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(tokenLeeway),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verifies reports whether token signatures are checked.
func (s *TokenService) Verifies() bool {
	return len(s.secret) > 0
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *TokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: subject %q is not a user ID", domainerror.ErrInvalidToken, claims.Subject)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// GenerateAccessToken signs a token the way the backend does. It fails when the
// service has no secret.
func (s *TokenService) GenerateAccessToken(userID int64, ttl time.Duration) (string, error) {
	if !s.Verifies() {
		return "", errors.New("token secret is not configured")
	}

	now := time.Now().UTC()
	claims := BackendClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) parseJWT(tokenString string) (*BackendClaims, error) {
	claims := &BackendClaims{}

	if !s.Verifies() {
		if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
		}
		if claims.ExpiresAt == nil {
			return nil, fmt.Errorf("%w: token has no expiry", domainerror.ErrInvalidToken)
		}
		if claims.ExpiresAt.Add(tokenLeeway).Before(time.Now()) {
			return nil, domainerror.ErrExpiredToken
		}
		return claims, nil
	}

	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}
