package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAddr            = ":8080"
	defaultDatabaseURL     = "lrbook.db"
	defaultDatabaseName    = "lrbook"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "24h"
	defaultLocation        = "Hyderabad"
	defaultLRMaxAttempts   = 5
	defaultAllowedOrigins  = "http://localhost:3000,http://localhost:5173"
	defaultAdminName       = "Administrator"
	minProdJWTSecretLength = 32
)

type Config struct {
	AppEnv   string
	Addr     string
	GinMode  string
	Database DatabaseConfig
	Auth     AuthConfig
	Booking  BookingConfig
	CORS     CORSConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	URL string
	// Name selects the database when URL points at a document store.
	Name    string
	Verbose bool
}

type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type BookingConfig struct {
	DefaultLocation string
	LRMaxAttempts   int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AdminConfig feeds cmd/provision only.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromViper(viper.New())
}

// FromViper builds a Config from an already prepared viper instance. Unset
// keys fall back to defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_ADDR", defaultAddr)
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("DATABASE_NAME", defaultDatabaseName)
	v.SetDefault("DATABASE_VERBOSE", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", defaultJWTTTL)
	v.SetDefault("DEFAULT_LOCATION", defaultLocation)
	v.SetDefault("LR_MAX_ATTEMPTS", defaultLRMaxAttempts)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins)
	v.SetDefault("ADMIN_NAME", defaultAdminName)

	ttlRaw := strings.TrimSpace(v.GetString("JWT_TTL"))
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value %q: %w", ttlRaw, err)
	}

	cfg := &Config{
		AppEnv:  strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		Addr:    strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode: strings.TrimSpace(v.GetString("GIN_MODE")),
		Database: DatabaseConfig{
			URL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
			Name:    strings.TrimSpace(v.GetString("DATABASE_NAME")),
			Verbose: v.GetBool("DATABASE_VERBOSE"),
		},
		Auth: AuthConfig{
			JWTSecret: strings.TrimSpace(v.GetString("JWT_SECRET")),
			JWTTTL:    ttl,
		},
		Booking: BookingConfig{
			DefaultLocation: strings.TrimSpace(v.GetString("DEFAULT_LOCATION")),
			LRMaxAttempts:   v.GetInt("LR_MAX_ATTEMPTS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Admin: AdminConfig{
			Email:    strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
			Password: v.GetString("ADMIN_PASSWORD"),
			Name:     strings.TrimSpace(v.GetString("ADMIN_NAME")),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("APP_ADDR must not be empty")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Booking.LRMaxAttempts < 1 {
		return fmt.Errorf("LR_MAX_ATTEMPTS must be >= 1")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.Auth.JWTSecret) < minProdJWTSecretLength {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least %d characters", minProdJWTSecretLength)
		}
		for _, o := range cfg.CORS.AllowedOrigins {
			if o == "*" {
				return fmt.Errorf("in prod/release CORS_ALLOWED_ORIGINS must not contain *")
			}
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
