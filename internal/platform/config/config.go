package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	StorageDriver     string

	// Evidence store
	EvidenceDir         string
	EvidenceMaxWidth    int
	EvidenceMaxBytes    int64
	EvidenceOrphanGrace time.Duration

	// Balance cache, disabled when RedisAddr is empty
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	BalanceCacheTTL time.Duration

	PosthogAPIKey   string
	PosthogEndpoint string
	GoogleClientID  string

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter formatted rate, e.g. "10-M"

	BootstrapAdminUsername string
	BootstrapAdminPassword string
	DefaultResetPassword   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "club-treasury")
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("EVIDENCE_DIR", "uploads")
	viper.SetDefault("EVIDENCE_MAX_WIDTH", 1600)
	viper.SetDefault("EVIDENCE_MAX_BYTES", 10<<20)
	viper.SetDefault("EVIDENCE_ORPHAN_GRACE", "24h")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BALANCE_CACHE_TTL", "5m")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "admin")
	viper.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
	viper.SetDefault("DEFAULT_RESET_PASSWORD", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		JWTIssuer:              viper.GetString("JWT_ISSUER"),
		StorageDriver:          strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		EvidenceDir:            viper.GetString("EVIDENCE_DIR"),
		EvidenceMaxWidth:       viper.GetInt("EVIDENCE_MAX_WIDTH"),
		EvidenceMaxBytes:       viper.GetInt64("EVIDENCE_MAX_BYTES"),
		RedisAddr:              viper.GetString("REDIS_ADDR"),
		RedisPassword:          viper.GetString("REDIS_PASSWORD"),
		RedisDB:                viper.GetInt("REDIS_DB"),
		PosthogAPIKey:          viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:        viper.GetString("POSTHOG_ENDPOINT"),
		GoogleClientID:         viper.GetString("GOOGLE_CLIENT_ID"),
		CORSAllowedOrigins:     splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:         viper.GetString("LOGIN_RATE_LIMIT"),
		BootstrapAdminUsername: viper.GetString("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapAdminPassword: viper.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		DefaultResetPassword:   viper.GetString("DEFAULT_RESET_PASSWORD"),
	}

	cfg.JWTExpiryDuration = durationOr("JWT_EXPIRY_DURATION", 12*time.Hour)
	cfg.EvidenceOrphanGrace = durationOr("EVIDENCE_ORPHAN_GRACE", 24*time.Hour)
	cfg.BalanceCacheTTL = durationOr("BALANCE_CACHE_TTL", 5*time.Minute)

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER is %q", StorageDriverPostgres)
		}
	case StorageDriverMemory:
		slog.Warn("Using in-memory storage, data is lost on restart")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}
	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID not set, Google sign-in is disabled")
	}
	if cfg.DefaultResetPassword == "" {
		slog.Warn("DEFAULT_RESET_PASSWORD not set, admin password resets are disabled")
	}

	return cfg, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			slog.Warn("Invalid duration, using default", slog.String("key", key), slog.String("value", raw), slog.String("default", fallback.String()))
		}
		return fallback
	}
	return d
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
