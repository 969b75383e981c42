package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	config "github.com/avatarctic/wishlist-api/configs"
	"github.com/avatarctic/wishlist-api/internal/application/services"
	"github.com/avatarctic/wishlist-api/internal/core/apperror"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver/helpers"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver/middleware"
	"github.com/avatarctic/wishlist-api/internal/mocks"
)

func okHandler(c echo.Context) error {
	id, _ := helpers.GetClientIDRaw(c)
	return c.String(http.StatusOK, id)
}

func newTokens() *services.TokenService {
	return services.NewTokenService(&config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour}, nil)
}

func runJWT(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return rec, mw(okHandler)(e.NewContext(req, rec))
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	m := middleware.NewJWTMiddleware(newTokens(), logrus.New())
	_, err := runJWT(t, m.RequireJWT(), "")
	require.ErrorIs(t, err, apperror.ErrJWTMissing)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	m := middleware.NewJWTMiddleware(newTokens(), logrus.New())
	for _, header := range []string{"Bearer", "Bearer a b", "Basic abc", "Bearer "} {
		_, err := runJWT(t, m.RequireJWT(), header)
		require.ErrorIs(t, err, apperror.ErrTokenInvalid, header)
	}
}

func TestJWTMiddleware_ValidTokenSetsClient(t *testing.T) {
	tokens := newTokens()
	token, err := tokens.IssueDefault("c1")
	require.NoError(t, err)

	m := middleware.NewJWTMiddleware(tokens, logrus.New())
	rec, err := runJWT(t, m.RequireJWT(), "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "c1", rec.Body.String())
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	tokens := newTokens()
	token, err := tokens.Issue("c1", -time.Minute)
	require.NoError(t, err)

	m := middleware.NewJWTMiddleware(tokens, logrus.New())
	_, err = runJWT(t, m.RequireJWT(), "Bearer "+token)
	require.ErrorIs(t, err, apperror.ErrTokenExpired)

	rec, err := runJWT(t, m.RequireJWTAllowExpired(), "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, "c1", rec.Body.String())
}

func runWithClient(mw echo.MiddlewareFunc, clientID string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if clientID != "" {
		helpers.SetClientID(c, clientID)
	}
	return rec, mw(okHandler)(c)
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	reset := time.Unix(1700000060, 0)
	limiter := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
		return false, 0, 60, reset, nil
	}}
	m := middleware.NewRateLimitMiddleware(limiter, logrus.New())

	rec, err := runWithClient(m.Handler(), "c1")
	require.ErrorIs(t, err, apperror.ErrTooManyRequests)
	require.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, "1700000060", rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	limiter := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
		return true, 10, 10, time.Now(), errors.New("redis down")
	}}
	m := middleware.NewRateLimitMiddleware(limiter, logrus.New())

	rec, err := runWithClient(m.Handler(), "c1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_SkipsAnonymous(t *testing.T) {
	limiter := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientID string) (bool, int, int, time.Time, error) {
		t.Fatal("anonymous requests must not consume client quota")
		return false, 0, 0, time.Time{}, nil
	}}
	m := middleware.NewRateLimitMiddleware(limiter, logrus.New())

	_, err := runWithClient(m.Handler(), "")
	require.NoError(t, err)
}

func TestIPRateLimitMiddleware(t *testing.T) {
	m := middleware.NewIPRateLimitMiddleware(1, 2, logrus.New())
	h := m.Handler()(okHandler)
	e := echo.New()

	call := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/authenticate", nil)
		req.RemoteAddr = ip + ":5555"
		return h(e.NewContext(req, httptest.NewRecorder()))
	}

	require.NoError(t, call("10.0.0.1"))
	require.NoError(t, call("10.0.0.1"))
	require.ErrorIs(t, call("10.0.0.1"), apperror.ErrTooManyRequests)

	// separate bucket per address
	require.NoError(t, call("10.0.0.2"))

	// idle buckets are dropped, so the address starts fresh
	time.Sleep(5 * time.Millisecond)
	m.Cleanup(time.Millisecond)
	require.NoError(t, call("10.0.0.1"))
}
