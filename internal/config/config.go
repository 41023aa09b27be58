package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Port:       envOr("PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "quizhive_user"),
		DBPassword: envOr("DB_PASSWORD", "quizhive_password"),
		DBName:     envOr("DB_NAME", "quizhive"),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),
		JWTSecret:  envOr("JWT_SECRET", "quizhive-staging-signing-key-2026"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
