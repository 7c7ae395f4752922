package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	TokenKey        string
	DatabaseURL     string
	LogLevel        string
	RateLimitRPS    float64
	RateLimitBurst  int
	BatchWorkers    int
	MaxBatchItems   int
	MaxProjection   int
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	// a missing .env is normal in containers
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getEnv("ADDR", ":8080"),
		TLSCert:         getEnv("TLS_CERT", ""),
		TLSKey:          getEnv("TLS_KEY", ""),
		TokenKey:        getEnv("TOKEN_KEY", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 3),
		BatchWorkers:    getEnvAsInt("BATCH_WORKERS", 4),
		MaxBatchItems:   getEnvAsInt("MAX_BATCH_ITEMS", 100),
		MaxProjection:   getEnvAsInt("MAX_PROJECTION_YEARS", 50),
		MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SEC", 5)) * time.Second,
	}
	if cfg.TokenKey == "" {
		return nil, ErrNoTokenKey
	}
	return cfg, nil
}

// TLS reports whether both certificate paths are configured.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
