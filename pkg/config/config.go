package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBSSLMode   string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTLHours int

	CatalogBaseURL        string
	CatalogTimeoutSeconds int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBSSLMode:   getEnv("DB_SSLMODE", ""),

		JWTSecret:   getEnv("JWT_SECRET", "fallback_secret_not_secure"),
		JWTIssuer:   getEnv("JWT_ISSUER", "dragon-ball-app"),
		JWTAudience: getEnv("JWT_AUDIENCE", "dragon-ball-users"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 168),

		CatalogBaseURL:        getEnv("CATALOG_BASE_URL", ""),
		CatalogTimeoutSeconds: getEnvInt("CATALOG_TIMEOUT_SECONDS", 10),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
