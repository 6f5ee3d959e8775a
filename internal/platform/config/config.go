package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPgsql  = "pgsql"
	StoreDriverMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	StoreDriver    string
	MigrationsPath string

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	RateLimit          string // limiter format, e.g. "100-M"
	CORSAllowedOrigins []string

	NotifyWebhookURL string
	NotifyAPIKey     string
	NotifyTimeout    time.Duration
	AdminNotifyPhone string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxClaimLease   time.Duration

	ProofStorageDir    string
	ProofMaxBytes      int64
	SequenceMaxRetries int
	DefaultCurrency    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPgsql)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "commerce-lifecycle-app")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("NOTIFY_WEBHOOK_URL", "")
	v.SetDefault("NOTIFY_API_KEY", "")
	v.SetDefault("NOTIFY_TIMEOUT", "5s")
	v.SetDefault("ADMIN_NOTIFY_PHONE", "")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "5s")
	v.SetDefault("OUTBOX_BATCH_SIZE", 50)
	v.SetDefault("OUTBOX_MAX_ATTEMPTS", 5)
	v.SetDefault("OUTBOX_CLAIM_LEASE", "1m")
	v.SetDefault("PROOF_STORAGE_DIR", "./data/proofs")
	v.SetDefault("PROOF_MAX_BYTES", 10<<20)
	v.SetDefault("SEQUENCE_MAX_RETRIES", 5)
	v.SetDefault("DEFAULT_CURRENCY", "USD")

	// Environment variables override defaults and .env values.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		StoreDriver:        strings.ToLower(v.GetString("STORE_DRIVER")),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		NotifyWebhookURL:   v.GetString("NOTIFY_WEBHOOK_URL"),
		NotifyAPIKey:       v.GetString("NOTIFY_API_KEY"),
		AdminNotifyPhone:   v.GetString("ADMIN_NOTIFY_PHONE"),
		OutboxBatchSize:    v.GetInt("OUTBOX_BATCH_SIZE"),
		OutboxMaxAttempts:  v.GetInt("OUTBOX_MAX_ATTEMPTS"),
		ProofStorageDir:    v.GetString("PROOF_STORAGE_DIR"),
		ProofMaxBytes:      v.GetInt64("PROOF_MAX_BYTES"),
		SequenceMaxRetries: v.GetInt("SEQUENCE_MAX_RETRIES"),
		DefaultCurrency:    strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION", time.Hour); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = parseDuration(v, "NOTIFY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.OutboxPollInterval, err = parseDuration(v, "OUTBOX_POLL_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.OutboxClaimLease, err = parseDuration(v, "OUTBOX_CLAIM_LEASE", time.Minute); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case StoreDriverPgsql:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverMemory:
		if cfg.IsProduction {
			return nil, fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.NotifyWebhookURL == "" {
		log.Println("Warning: NOTIFY_WEBHOOK_URL not set. Notifications will only be logged.")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
