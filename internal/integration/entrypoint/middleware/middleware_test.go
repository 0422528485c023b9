package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/adapter/mocks"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
	"github.com/budgetwise/statistics/internal/integration/adapters"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokenService adapter.TokenService) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/protected", NewAuthMiddleware(tokenService).Authenticate(), func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "token": GetAccessTokenFromContext(c)})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(m *mocks.MockTokenService)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:       "empty bearer token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setup: func(m *mocks.MockTokenService) {
				m.EXPECT().ValidateAccessToken(gomock.Any(), "expired").Return(nil, domainerror.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeExpiredToken),
		},
		{
			name:   "invalid token",
			header: "Bearer garbage",
			setup: func(m *mocks.MockTokenService) {
				m.EXPECT().ValidateAccessToken(gomock.Any(), "garbage").Return(nil, domainerror.ErrInvalidToken)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(m *mocks.MockTokenService) {
				m.EXPECT().ValidateAccessToken(gomock.Any(), "good").Return(&adapter.TokenClaims{UserID: 42}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tokenService := mocks.NewMockTokenService(ctrl)
			if tt.setup != nil {
				tt.setup(tokenService)
			}

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newAuthRouter(tokenService).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var body struct {
					UserID int64  `json:"user_id"`
					Token  string `json:"token"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, int64(42), body.UserID)
				assert.Equal(t, "good", body.Token)
				return
			}

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestAuthMiddleware_SignatureCheck(t *testing.T) {
	forged, err := adapters.NewTokenService("another-key").GenerateAccessToken(42, time.Hour)
	require.NoError(t, err)
	genuine, err := adapters.NewTokenService("server-key").GenerateAccessToken(42, time.Hour)
	require.NoError(t, err)

	router := newAuthRouter(adapters.NewTokenService("server-key"))

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(domainerror.ErrCodeInvalidToken), body.Code)
	})

	t.Run("accepts a token signed with the server key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+genuine)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("keeps the client ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestMemoryStore_Allow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, err := store.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _ = store.Allow(ctx, "ip:5.6.7.8", 3, time.Minute)
	assert.True(t, allowed, "other keys keep their own window")

	now = now.Add(time.Minute + time.Second)
	allowed, _ = store.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
	assert.True(t, allowed, "window expired")

	store.Cleanup()
	assert.Len(t, store.entries, 1)

	store.Reset()
	assert.Empty(t, store.entries)
}

func TestRedisStore_Allow(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "ratelimit:")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := store.Allow(ctx, "user:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := store.Allow(ctx, "user:1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, server.TTL("ratelimit:user:1"))

	server.FastForward(time.Minute + time.Second)

	allowed, err = store.Allow(ctx, "user:1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func TestRateLimiter_Middleware(t *testing.T) {
	newRouter := func(store RateLimitStore) *gin.Engine {
		router := gin.New()
		router.Use(NewRateLimiterWithConfig(store, 1, time.Minute).Middleware())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("rejects requests over the limit", func(t *testing.T) {
		router := newRouter(NewMemoryStore())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(domainerror.ErrCodeRateLimited), body.Code)
	})

	t.Run("lets requests through when the store fails", func(t *testing.T) {
		router := newRouter(failingStore{})

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
