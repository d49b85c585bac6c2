package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string
	LogLevel string

	DBPath        string
	DBMaxIdleConn int
	DBMaxOpenConn int

	SettleInterval time.Duration
	SettleDelay    time.Duration
}

// Load loads configuration from environment variables and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:        getenv("APP_SERVICE", "storefront"),
		AppVersion:     getenv("APP_VERSION", "0.1.0"),
		Environment:    getenv("ENVIRONMENT", "development"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8089"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DBPath:         getenv("DATABASE_PATH", "storefront.db"),
		DBMaxIdleConn:  getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:  getenvInt("DATABASE_MAX_OPEN_CONN", 8),
		SettleInterval: getenvDuration("SETTLE_INTERVAL", 500*time.Millisecond),
		SettleDelay:    getenvDuration("SETTLE_DELAY", time.Second),
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
