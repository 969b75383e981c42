package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/ports"
)

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	JWT         *JWTMiddleware
	Logging     *LoggingMiddleware
	RateLimit   *RateLimitMiddleware
	IPRateLimit *IPRateLimitMiddleware
	Metrics     *MetricsMiddleware
}

// PublicRateLimit configures the per-IP limiter of unauthenticated routes.
type PublicRateLimit struct {
	RequestsPerMinute int
	Burst             int
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(
	tokens ports.TokenService,
	rateLimiterService ports.RateLimiterService,
	public PublicRateLimit,
	logger *logrus.Logger,
	requestsTotal *prometheus.CounterVec,
	requestDuration *prometheus.HistogramVec,
) *MiddlewareCollection {
	return &MiddlewareCollection{
		JWT:         NewJWTMiddleware(tokens, logger),
		Logging:     NewLoggingMiddleware(logger),
		RateLimit:   NewRateLimitMiddleware(rateLimiterService, logger),
		IPRateLimit: NewIPRateLimitMiddleware(public.RequestsPerMinute, public.Burst, logger),
		Metrics:     NewMetricsMiddleware(requestsTotal, requestDuration),
	}
}
