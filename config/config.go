// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	DatabasePath   string
	AllowedOrigins []string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; real environments set variables directly.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("PORT", "8080"),
		DatabasePath: getEnv("DB_PATH", "hourglance.db"),
		AllowedOrigins: strings.Split(
			getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
