package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Port     string
	GinMode  string
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	// TTL of zero issues tokens without an exp claim.
	TTL time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

type LogConfig struct {
	Level  string
	Format string
}

type HTTPConfig struct {
	MaxBodyBytes int64
	CORSOrigin   string
}

type ExportConfig struct {
	// SigningKey falls back to the JWT secret when unset.
	SigningKey string
}

func Load() (*Config, error) {
	godotenv.Load()

	ttl, err := getEnvDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cost, err := getEnvInt("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	maxBody, err := getEnvInt("MAX_BODY_BYTES", 30<<20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    ttl,
		},
		Security: SecurityConfig{
			BcryptCost: cost,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		HTTP: HTTPConfig{
			MaxBodyBytes: int64(maxBody),
			CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
		},
	}
	cfg.Export.SigningKey = getEnv("EXPORT_SIGNING_KEY", cfg.JWT.Secret)

	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return parsed, nil
}
