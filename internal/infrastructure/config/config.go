// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (airport reference data; empty DSN disables decoration)
	PostgresURI string

	// Providers
	RegistryBaseURL string
	LiveBaseURL     string
	LiveAPIKey      string
	HistoryBaseURL  string
	HistoryTokenURL string
	HistoryClientID string
	HistorySecret   string
	ProviderTimeout time.Duration
	BackfillTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 60)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "tailtracker"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RegistryBaseURL: getEnv("ADSBDB_BASE_URL", "https://api.adsbdb.com"),
		LiveBaseURL:     getEnv("FR24_BASE_URL", "https://fr24api.flightradar24.com"),
		LiveAPIKey:      getEnv("FR24_API_KEY", ""),
		HistoryBaseURL:  getEnv("OPENSKY_BASE_URL", "https://opensky-network.org"),
		HistoryTokenURL: getEnv("OPENSKY_TOKEN_URL", "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"),
		HistoryClientID: getEnv("OPENSKY_CLIENT_ID", ""),
		HistorySecret:   getEnv("OPENSKY_CLIENT_SECRET", ""),
		ProviderTimeout: time.Duration(getEnvAsInt("PROVIDER_TIMEOUT", 5)) * time.Second,
		BackfillTimeout: time.Duration(getEnvAsInt("BACKFILL_TIMEOUT", 45)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
