package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/wishlist-api/internal/core/ports"
	customMiddleware "github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	BodyLimit      string
	Environment    string
	// Per-IP limits for unauthenticated routes
	PublicRequestsPerMinute int
	PublicBurst             int
}

type ServerDeps struct {
	ClientService      ports.ClientService
	AuthService        ports.AuthService
	TokenService       ports.TokenService
	ProductService     ports.ProductService
	FavoriteService    ports.FavoriteService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	clientService   ports.ClientService
	authSvc         ports.AuthService
	tokens          ports.TokenService
	productService  ports.ProductService
	favoriteService ports.FavoriteService
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
	done            chan struct{}
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		clientService:   deps.ClientService,
		authSvc:         deps.AuthService,
		tokens:          deps.TokenService,
		productService:  deps.ProductService,
		favoriteService: deps.FavoriteService,
		healthCheckers:  deps.HealthCheckers,
		done:            make(chan struct{}),
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.TokenService,
			deps.RateLimiterService,
			customMiddleware.PublicRateLimit{
				RequestsPerMinute: serverConfig.PublicRequestsPerMinute,
				Burst:             serverConfig.PublicBurst,
			},
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = server.errorHandler

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
