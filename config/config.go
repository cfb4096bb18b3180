package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP Server
	Port             string
	CORSAllowOrigins []string
	SwaggerEnabled   bool

	// Backend selection
	DataBackend string

	// Database
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	DBConnectRetries int
	DBRetryInterval  time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Summary
	SummaryDefaultWindow string
	SummaryTrailingDays  int
	QueryTimeout         time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		SwaggerEnabled:   getEnvBool("SWAGGER_ENABLED", true),

		DataBackend: getEnv("DATA_BACKEND", "postgres"),

		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", "password"),
		DBName:           getEnv("DB_NAME", "financetracker"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 30),
		DBRetryInterval:  getEnvDuration("DB_RETRY_INTERVAL", 2*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		SummaryDefaultWindow: getEnv("SUMMARY_DEFAULT_WINDOW", "trailing"),
		SummaryTrailingDays:  getEnvInt("SUMMARY_TRAILING_DAYS", 30),
		QueryTimeout:         getEnvDuration("QUERY_TIMEOUT", 10*time.Second),
	}
}

// DatabaseURL is the connection string for both pgx and lib/pq.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "postgres":
		if c.DBHost == "" {
			errors = append(errors, "DB_HOST cannot be empty when using postgres backend")
		}
		if c.DBName == "" {
			errors = append(errors, "DB_NAME cannot be empty when using postgres backend")
		}
		if c.DBConnectRetries < 1 {
			errors = append(errors, fmt.Sprintf("invalid DB_CONNECT_RETRIES %d: must be at least 1", c.DBConnectRetries))
		}
	case "memory":
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [postgres memory]", c.DataBackend))
	}

	switch c.SummaryDefaultWindow {
	case "trailing", "all":
	default:
		errors = append(errors, fmt.Sprintf("invalid summary default window '%s': must be 'trailing' or 'all'", c.SummaryDefaultWindow))
	}
	if c.SummaryTrailingDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid summary trailing days %d: must be positive", c.SummaryTrailingDays))
	}
	if c.QueryTimeout <= 0 {
		errors = append(errors, "query timeout must be positive")
	}

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'console' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
