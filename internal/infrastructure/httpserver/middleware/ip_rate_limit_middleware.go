package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/avatarctic/wishlist-api/internal/core/apperror"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// IPRateLimitMiddleware applies an in-process token bucket per client IP to
// unauthenticated routes.
type IPRateLimitMiddleware struct {
	limiters sync.Map // ip -> *ipLimiter
	rps      rate.Limit
	burst    int
	logger   *logrus.Logger
}

// NewIPRateLimitMiddleware allows requestsPerMinute sustained requests with the given burst.
func NewIPRateLimitMiddleware(requestsPerMinute, burst int, logger *logrus.Logger) *IPRateLimitMiddleware {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	if burst <= 0 {
		burst = 10
	}
	return &IPRateLimitMiddleware{
		rps:    rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:  burst,
		logger: logger,
	}
}

func (m *IPRateLimitMiddleware) get(ip string) *ipLimiter {
	if v, ok := m.limiters.Load(ip); ok {
		l := v.(*ipLimiter)
		l.mu.Lock()
		l.lastSeen = time.Now()
		l.mu.Unlock()
		return l
	}
	l := &ipLimiter{limiter: rate.NewLimiter(m.rps, m.burst), lastSeen: time.Now()}
	actual, _ := m.limiters.LoadOrStore(ip, l)
	return actual.(*ipLimiter)
}

func (m *IPRateLimitMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if !m.get(ip).limiter.Allow() {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": ip, "path": c.Path()}).Warn("public rate limit exceeded")
				}
				return apperror.ErrTooManyRequests
			}
			return next(c)
		}
	}
}

// Cleanup drops limiters idle for longer than maxIdle.
func (m *IPRateLimitMiddleware) Cleanup(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	m.limiters.Range(func(key, value any) bool {
		l := value.(*ipLimiter)
		l.mu.Lock()
		idle := l.lastSeen.Before(cutoff)
		l.mu.Unlock()
		if idle {
			m.limiters.Delete(key)
		}
		return true
	})
}

// StartCleanup runs Cleanup every interval until done is closed.
func (m *IPRateLimitMiddleware) StartCleanup(interval, maxIdle time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Cleanup(maxIdle)
			case <-done:
				return
			}
		}
	}()
}
