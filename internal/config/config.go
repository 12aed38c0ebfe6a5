package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	Env     string
	Host    string
	Port    int

	CORSOrigins []string
	Debug       bool

	// DeliveryDelay is how long a message stays "sent" before the simulated
	// delivered transition fires.
	DeliveryDelay   time.Duration
	DefaultPageSize int
	MaxUploadBytes  int64
	SeedDemoData    bool
}

func Load() (*Config, error) {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := &Config{
		AppName: getEnv("APP_NAME", "Mockchat API"),
		Env:     getEnv("APP_ENV", "development"),
		Host:    getEnv("HTTP_HOST", "0.0.0.0"),
		Port:    getEnvAsInt("HTTP_PORT", 8000),
		Debug:   getEnvAsBool("DEBUG", true),

		DeliveryDelay:   time.Duration(getEnvAsInt("DELIVERY_DELAY_MS", 1000)) * time.Millisecond,
		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 50),
		MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_MB", 50)) << 20,
		SeedDemoData:    getEnvAsBool("SEED_DEMO_DATA", true),
	}

	if cfg.DeliveryDelay < 0 {
		return nil, fmt.Errorf("DELIVERY_DELAY_MS must not be negative")
	}
	if cfg.DefaultPageSize <= 0 {
		return nil, fmt.Errorf("DEFAULT_PAGE_SIZE must be positive")
	}

	corsOrigins := getEnv("CORS_ORIGINS", "")
	if corsOrigins != "" {
		parts := strings.Split(corsOrigins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.CORSOrigins = parts
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
