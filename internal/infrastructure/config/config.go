package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tripcast-service/internal/infrastructure/forecast"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string

	// PostgreSQL
	PostgresDSN    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Trips
	TripsMinYear int // 0 means the current year

	// Forecasts
	ForecastSource string
	ForecastFile   string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Metrics
	MetricsNamespace string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:               getEnv("PORT", "8080"),
		ReadTimeout:        time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:       time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		PostgresDSN:    getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=bookings sslmode=disable"),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),

		TripsMinYear: getEnvAsInt("TRIPS_MIN_YEAR", 0),

		ForecastSource: strings.ToLower(getEnv("FORECAST_SOURCE", forecast.SourceEmbedded)),
		ForecastFile:   getEnv("FORECAST_FILE", ""),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "bookings"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "tripcast"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.ForecastSource {
	case forecast.SourceEmbedded, forecast.SourceMongo:
	case forecast.SourceFile:
		if c.ForecastFile == "" {
			return fmt.Errorf("FORECAST_FILE is required when FORECAST_SOURCE=%s", forecast.SourceFile)
		}
	default:
		return fmt.Errorf("unknown FORECAST_SOURCE %q", c.ForecastSource)
	}

	if c.TripsMinYear < 0 {
		return fmt.Errorf("TRIPS_MIN_YEAR must not be negative, got %d", c.TripsMinYear)
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required")
	}

	return nil
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

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
