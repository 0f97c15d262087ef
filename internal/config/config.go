package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	DatabasePath    string
	JWTSecret       string
	AllowedOrigin   string
	StoreGCSchedule string // cron expression driving value-log GC
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./devlinkr-data"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		StoreGCSchedule: getEnv("STORE_GC_SCHEDULE", "@every 30m"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
