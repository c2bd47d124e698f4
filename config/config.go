package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything controllers and services need from the
// environment.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	LockWindow  time.Duration
	LockWarning time.Duration
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "committee_tracker"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
		LockWindow:  secondsEnv("LOCK_WINDOW_SECONDS", 300),
		LockWarning: secondsEnv("LOCK_WARNING_SECONDS", 30),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func secondsEnv(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		slog.Warn("invalid duration env, using fallback", "key", key, "value", value)
	}
	return time.Duration(fallback) * time.Second
}
