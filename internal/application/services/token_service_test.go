package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	config "github.com/avatarctic/wishlist-api/configs"
	impl "github.com/avatarctic/wishlist-api/internal/application/services"
	"github.com/avatarctic/wishlist-api/internal/core/apperror"
)

func newTokenService(secret string) *impl.TokenService {
	return impl.NewTokenService(&config.JWTConfig{Secret: secret, ExpiresIn: time.Hour}, nil)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTokenService("s3cret")

	token, err := svc.IssueDefault("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token, false)
	require.NoError(t, err)
	require.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.ClientID)
	require.Equal(t, "64b7f0c2a1b2c3d4e5f60718", claims.Subject)
}

func TestTokenService_EmptyClientID(t *testing.T) {
	_, err := newTokenService("s").Issue("", time.Minute)
	require.ErrorIs(t, err, apperror.ErrFailedGenerateToken)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := newTokenService("s")

	token, err := svc.Issue("abc", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token, false)
	require.ErrorIs(t, err, apperror.ErrTokenExpired)

	claims, err := svc.Verify(token, true)
	require.NoError(t, err)
	require.Equal(t, "abc", claims.ClientID)
}

func TestTokenService_ZeroTTLIsExpired(t *testing.T) {
	svc := newTokenService("s")

	token, err := svc.Issue("abc", 0)
	require.NoError(t, err)

	_, err = svc.Verify(token, false)
	require.ErrorIs(t, err, apperror.ErrTokenExpired)

	claims, err := svc.Verify(token, true)
	require.NoError(t, err)
	require.Equal(t, "abc", claims.ClientID)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := newTokenService("one").IssueDefault("abc")
	require.NoError(t, err)

	_, err = newTokenService("two").Verify(token, false)
	require.ErrorIs(t, err, apperror.ErrTokenInvalid)

	// signature is checked even when expiration is ignored
	_, err = newTokenService("two").Verify(token, true)
	require.ErrorIs(t, err, apperror.ErrTokenInvalid)
}

func TestTokenService_Garbage(t *testing.T) {
	_, err := newTokenService("s").Verify("not-a-jwt", false)
	require.ErrorIs(t, err, apperror.ErrTokenInvalid)
}
