package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	config "github.com/avatarctic/wishlist-api/configs"
	"github.com/avatarctic/wishlist-api/internal/application/services"
	"github.com/avatarctic/wishlist-api/internal/core/ports"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/catalog"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/db"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/email"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/health"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/httpserver"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/logging"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/redis"
	"github.com/avatarctic/wishlist-api/internal/infrastructure/repositories"
)

func main() {
	app := &cli.App{
		Name:   "wishlist-api",
		Usage:  "Wishlist REST API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Apply database index migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Usage:   "migrations directory",
						EnvVars: []string{"MIGRATIONS_PATH"},
					},
					&cli.IntFlag{
						Name:  "down",
						Usage: "roll back N steps instead of migrating up",
					},
				},
				Action: migrateCmd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func bootstrap() (*config.Config, *logrus.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closer, err := logging.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, func() { _ = closer.Close() }, nil
}

func newEmailService(cfg *config.Config, logger *logrus.Logger) (*email.EmailService, error) {
	return email.NewEmailService(&email.EmailConfig{
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		BaseURL:        cfg.Email.BaseURL,
		AlertEmail:     cfg.Email.AlertEmail,
	}, logger)
}

// connectDatabase alerts the operator by mail when the database is unreachable.
func connectDatabase(cfg *config.Config, mailer ports.EmailService, logger *logrus.Logger) (*db.Database, error) {
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if alertErr := mailer.SendDatabaseFailureAlert(ctx, err); alertErr != nil {
			logger.WithError(alertErr).Error("Failed to send database failure alert")
		}
		return nil, err
	}
	return database, nil
}

func migrateCmd(c *cli.Context) error {
	cfg, logger, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	emailService, err := newEmailService(cfg, logger)
	if err != nil {
		return err
	}
	database, err := connectDatabase(cfg, emailService, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	path := c.String("path")
	if path == "" {
		path = cfg.Database.MigrationsPath
	}

	if steps := c.Int("down"); steps > 0 {
		if err := database.Rollback(path, steps); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"path": path, "steps": steps}).Info("Migrations rolled back")
		return nil
	}
	if err := database.Migrate(path); err != nil {
		return err
	}
	logger.WithField("path", path).Info("Migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, logger, cleanup, err := bootstrap()
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting wishlist API...")

	emailService, err := newEmailService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	database, err := connectDatabase(cfg, emailService, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	if err := database.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	redisCache := redis.NewRedisCache(redisClient, "wishlist")
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)

	clientRepo := repositories.NewCachingClientRepository(
		repositories.NewClientRepository(database, logger), redisCache, cfg.Redis.CacheTTL)
	favoriteRepo := repositories.NewCachingFavoriteRepository(
		repositories.NewFavoriteRepository(database, logger), redisCache, cfg.Redis.CacheTTL)

	catalogMetrics, err := catalog.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("Failed to register catalog metrics:", err)
	}
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, catalogMetrics, logger)

	tokenService := services.NewTokenService(&cfg.JWT, logger)
	clientService := services.NewClientService(clientRepo, favoriteRepo, emailService,
		services.ClientServiceConfig{RequireEmailConfirmation: cfg.Clients.RequireEmailConfirmation}, logger)
	authService := services.NewAuthService(clientService, tokenService, logger)
	productService := services.NewProductService(catalogClient, logger)
	favoriteService := services.NewFavoriteService(favoriteRepo, productService, logger)
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, &services.RateLimiterConfig{
		DefaultRequestsPerMinute: cfg.RateLimit.DefaultRequestsPerMinute,
		BurstMultiplier:          cfg.RateLimit.BurstMultiplier,
		Window:                   cfg.RateLimit.Window,
		KeyPrefix:                cfg.RateLimit.KeyPrefix,
	}, logger)

	serverConfig := &httpserver.ServerConfig{
		Host:                    cfg.Server.Host,
		Port:                    cfg.Server.Port,
		ReadTimeout:             cfg.Server.ReadTimeout,
		WriteTimeout:            cfg.Server.WriteTimeout,
		IdleTimeout:             cfg.Server.IdleTimeout,
		TLSCertFile:             cfg.Server.TLSCertFile,
		TLSKeyFile:              cfg.Server.TLSKeyFile,
		AllowedOrigins:          cfg.Server.AllowedOrigins,
		BodyLimit:               cfg.Server.BodyLimit,
		Environment:             cfg.Server.Environment,
		PublicRequestsPerMinute: cfg.RateLimit.PublicRequestsPerMinute,
		PublicBurst:             cfg.RateLimit.PublicBurst,
	}

	server := httpserver.NewServer(serverConfig, logger, httpserver.ServerDeps{
		ClientService:      clientService,
		AuthService:        authService,
		TokenService:       tokenService,
		ProductService:     productService,
		FavoriteService:    favoriteService,
		RateLimiterService: rateLimiterService,
		HealthCheckers: []ports.HealthChecker{
			health.NewDBHealthChecker(database),
			health.NewRedisHealthChecker(redisClient),
		},
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.WithError(err).Info("HTTP server stopped")
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown:", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}
