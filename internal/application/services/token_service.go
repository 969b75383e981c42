package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/wishlist-api/configs"
	"github.com/avatarctic/wishlist-api/internal/core/apperror"
	"github.com/avatarctic/wishlist-api/internal/core/domain/auth"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

// TokenService signs HS256 bearer tokens that bind a client id.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	logger    *logrus.Logger
	now       func() time.Time
}

func NewTokenService(jwtConfig *config.JWTConfig, logger *logrus.Logger) *TokenService {
	return &TokenService{
		secret:    []byte(jwtConfig.Secret),
		expiresIn: jwtConfig.ExpiresIn,
		logger:    logger,
		now:       time.Now,
	}
}

var _ ports.TokenService = (*TokenService)(nil)

// IssueDefault issues a token with the configured lifetime.
func (s *TokenService) IssueDefault(clientID string) (string, error) {
	return s.Issue(clientID, s.expiresIn)
}

func (s *TokenService) Issue(clientID string, ttl time.Duration) (string, error) {
	if clientID == "" {
		return "", apperror.ErrFailedGenerateToken.Wrap(errors.New("empty client id"))
	}
	now := s.now()
	claims := &auth.Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"client_id": clientID}).WithError(err).Error("failed to sign token")
		}
		return "", apperror.ErrFailedGenerateToken.Wrap(err)
	}
	return signed, nil
}

// Verify parses token and returns its claims. Expiration is skipped only when
// ignoreExpiration is set, which the refresh flow relies on.
func (s *TokenService) Verify(tokenString string, ignoreExpiration bool) (*auth.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if ignoreExpiration {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.ErrTokenExpired.Wrap(err)
		}
		return nil, apperror.ErrTokenInvalid.Wrap(err)
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok || !token.Valid {
		return nil, apperror.ErrTokenInvalid
	}
	if claims.ClientID == "" {
		return nil, apperror.ErrTokenInvalid.Wrap(errors.New("token carries no client id"))
	}
	return claims, nil
}
