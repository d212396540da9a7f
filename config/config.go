package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/order-dashboard/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type AuthMode string

const (
	// AuthModeRemote signs in against the order backend.
	AuthModeRemote AuthMode = "remote"
	// AuthModeMock signs in against the local restaurant directory and keeps
	// orders in the local store.
	AuthModeMock AuthMode = "mock"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBDSN    string

	BackendURL     string
	BackendTimeout time.Duration

	AuthMode     AuthMode
	PollInterval time.Duration

	CORSOrigin          string
	SigninRatePerMinute int
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:               getEnv("DB_DSN", "dashboard.db"),
		BackendURL:          strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000"), "/"),
		BackendTimeout:      getDuration("BACKEND_TIMEOUT", 30*time.Second),
		AuthMode:            AuthMode(strings.ToLower(getEnv("AUTH_MODE", string(AuthModeRemote)))),
		PollInterval:        getDuration("POLL_INTERVAL", 10*time.Second),
		CORSOrigin:          getEnv("CORS_ORIGIN", "http://127.0.0.1:5500"),
		SigninRatePerMinute: getInt("SIGNIN_RATE_PER_MINUTE", 5),
	}

	if cfg.AuthMode != AuthModeRemote && cfg.AuthMode != AuthModeMock {
		utils.ErrorLogger.Errorf("Unknown AUTH_MODE %q, falling back to %s", cfg.AuthMode, AuthModeRemote)
		cfg.AuthMode = AuthModeRemote
	}
	if cfg.PollInterval <= 0 {
		utils.ErrorLogger.Errorf("POLL_INTERVAL must be positive, using 10s")
		cfg.PollInterval = 10 * time.Second
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		utils.ErrorLogger.Errorf("Invalid PORT %q, falling back to 8080", cfg.Port)
		cfg.Port = "8080"
	}

	return cfg
}

// InitDB opens the local database holding the key-value store and the
// restaurant directory.
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBDSN), gormCfg)
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), gormCfg)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.ErrorLogger.Errorf("Invalid %s %q: %v", key, v, err)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		utils.ErrorLogger.Errorf("Invalid %s %q", key, v)
		return fallback
	}
	return n
}
