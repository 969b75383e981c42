package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Redis     RedisConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
	Clients   ClientsConfig
}

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
}

type DatabaseConfig struct {
	URI            string
	Name           string
	ConnectTimeout time.Duration
	// Connection pool settings
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	MigrationsPath  string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	BaseURL        string
	// AlertEmail receives operational alerts such as database outages.
	AlertEmail string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
	// CacheTTL applies to cached client records.
	CacheTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
	// FilePath enables rotated file output in addition to stdout when set.
	FilePath     string
	MaxAge       time.Duration
	RotationTime time.Duration
}

type RateLimitConfig struct {
	DefaultRequestsPerMinute int
	BurstMultiplier          float64
	Window                   time.Duration
	KeyPrefix                string
	PublicRequestsPerMinute  int
	PublicBurst              int
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ClientsConfig struct {
	RequireEmailConfirmation bool
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "3333"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),
			BodyLimit:      getEnv("SERVER_BODY_LIMIT", "25M"),
			Environment:    getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			URI:             getEnvRequired("MONGO_URI"),
			Name:            getEnv("MONGO_DATABASE", "wishlist"),
			ConnectTimeout:  getDurationEnv("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			MaxPoolSize:     uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 50)),
			MinPoolSize:     uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 0)),
			MaxConnIdleTime: getDurationEnv("MONGO_MAX_CONN_IDLE_TIME", 5*time.Minute),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		JWT: JWTConfig{
			Secret:    getEnvRequired("JWT_SECRET"),
			ExpiresIn: getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour),
		},
		Email: EmailConfig{
			SendGridAPIKey: getEnvRequired("SENDGRID_API_KEY"),
			FromEmail:      getEnv("MAIL_FROM", "noreply@wishlist.local"),
			FromName:       getEnv("MAIL_FROM_NAME", "Wishlist"),
			BaseURL:        getEnvRequired("BASE_URL"),
			AlertEmail:     getEnv("MAIL_DEFAULT", ""),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			CacheTTL:     getDurationEnv("REDIS_CACHE_TTL", 3*time.Minute),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			Format:       getEnv("LOG_FORMAT", "json"),
			FilePath:     getEnv("LOG_FILE_PATH", ""),
			MaxAge:       getDurationEnv("LOG_MAX_AGE", 7*24*time.Hour),
			RotationTime: getDurationEnv("LOG_ROTATION_TIME", 24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			DefaultRequestsPerMinute: getIntEnv("RATE_LIMIT_RPM", 120),
			BurstMultiplier:          getFloatEnv("RATE_LIMIT_BURST", 2.0),
			Window:                   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:                getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
			PublicRequestsPerMinute:  getIntEnv("RATE_LIMIT_PUBLIC_RPM", 20),
			PublicBurst:              getIntEnv("RATE_LIMIT_PUBLIC_BURST", 10),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnvRequired("CATALOG_BASE_URL"),
			Timeout: getDurationEnv("CATALOG_TIMEOUT", 10*time.Second),
		},
		Clients: ClientsConfig{
			RequireEmailConfirmation: getBoolEnv("REQUIRE_EMAIL_CONFIRMATION", false),
		},
	}

	if cfg.JWT.ExpiresIn <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", cfg.JWT.ExpiresIn)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
