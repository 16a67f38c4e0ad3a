package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	AppName     string // Used in alert header keys (e.g. docManagementApp.folder.created)
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// Pagination
	DefaultPageSize int
	MaxPageSize     int
	// Run schema migrations on startup
	AutoMigrate bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		AppName:         getEnv("APP_NAME", "docManagementApp"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     tablePrefix,
		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", DefaultPageSize),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", MaxPageSize),
		AutoMigrate:     getEnv("AUTO_MIGRATE", "true") == "true",
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
