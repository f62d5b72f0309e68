package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	GinMode      string
	IsProduction bool

	JWTSecret                  string
	JWTIssuer                  string
	JWTExpiryDuration          time.Duration
	RefreshTokenExpiryDuration time.Duration

	// Timezone is the single reference location for every calendar-day
	// boundary: receipts-per-day windows, withdrawal dates, timestamp
	// parsing and display.
	Timezone *time.Location

	MigrationsPath string

	// RedisURL is optional; when set the rate limiter uses a redis store
	// instead of the in-memory one.
	RedisURL  string
	RateLimit string

	// CORSAllowedOrigins lists frontend origins; empty means allow all.
	CORSAllowedOrigins []string

	// Read only by the -provision-admin path.
	AdminUsername string
	AdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
// It fails on a missing DATABASE_URL or JWT_SECRET and on an unparseable APP_TIMEZONE.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "cardflow-backend")
	viper.SetDefault("JWT_EXPIRY_MINUTES", 60)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DAYS", 7)
	viper.SetDefault("APP_TIMEZONE", "Europe/Moscow")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("ADMIN_USERNAME", "")
	viper.SetDefault("ADMIN_PASSWORD", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		Port:           viper.GetString("PORT"),
		GinMode:        viper.GetString("GIN_MODE"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		JWTIssuer:      viper.GetString("JWT_ISSUER"),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		RedisURL:       viper.GetString("REDIS_URL"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		AdminUsername:  viper.GetString("ADMIN_USERNAME"),
		AdminPassword:  viper.GetString("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	jwtExpiryMinutes := viper.GetInt("JWT_EXPIRY_MINUTES")
	if jwtExpiryMinutes <= 0 {
		jwtExpiryMinutes = 60
		log.Printf("Warning: invalid JWT_EXPIRY_MINUTES, defaulting to %d\n", jwtExpiryMinutes)
	}
	cfg.JWTExpiryDuration = time.Duration(jwtExpiryMinutes) * time.Minute

	refreshExpiryDays := viper.GetInt("REFRESH_TOKEN_EXPIRY_DAYS")
	if refreshExpiryDays <= 0 {
		refreshExpiryDays = 7
		log.Printf("Warning: invalid REFRESH_TOKEN_EXPIRY_DAYS, defaulting to %d\n", refreshExpiryDays)
	}
	cfg.RefreshTokenExpiryDuration = time.Duration(refreshExpiryDays) * 24 * time.Hour

	tzName := viper.GetString("APP_TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = loc

	if origins := viper.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}
