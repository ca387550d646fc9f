// Package config reads the client configuration from the environment, with
// an optional .env overlay for development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the client needs to reach a server.
type Config struct {
	APIBaseURL string
	WSBaseURL  string
	LogLevel   string
	LogFormat  string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL: getEnv("GUESSWHO_API_BASE_URL", "http://localhost:3001/api"),
		WSBaseURL:  getEnv("GUESSWHO_WS_BASE_URL", "ws://localhost:3001/ws"),
		LogLevel:   getEnv("GUESSWHO_LOG_LEVEL", "info"),
		LogFormat:  getEnv("GUESSWHO_LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
