package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	SitesDataBase string // Base path for client site files
	CORSOrigin    string // Allowed dashboard origin
	SweepSchedule string // Cron expression for the background monitoring sweep; empty disables it
	AppEnv        string // "development" enables error detail in responses
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./hosting.db"),
		SitesDataBase: getEnv("SITES_DATA_BASE", "./sites"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SweepSchedule: getEnv("MONITOR_SWEEP_SCHEDULE", ""),
		AppEnv:        getEnv("APP_ENV", "production"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
