package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:                 "8080",
		DataBackend:          "postgres",
		DBHost:               "localhost",
		DBName:               "financetracker",
		DBConnectRetries:     30,
		LogFormat:            "console",
		SummaryDefaultWindow: "trailing",
		SummaryTrailingDays:  30,
		QueryTimeout:         10 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid postgres backend config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid memory backend without database settings",
			mutate: func(c *Config) { c.DataBackend = "memory"; c.DBHost = ""; c.DBName = "" },
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sqlite" },
			wantErr:     true,
			errorString: "invalid data backend 'sqlite': must be one of [postgres memory]",
		},
		{
			name:        "postgres backend missing host",
			mutate:      func(c *Config) { c.DBHost = "" },
			wantErr:     true,
			errorString: "DB_HOST cannot be empty when using postgres backend",
		},
		{
			name:        "invalid summary window",
			mutate:      func(c *Config) { c.SummaryDefaultWindow = "weekly" },
			wantErr:     true,
			errorString: "invalid summary default window 'weekly'",
		},
		{
			name:        "non-positive trailing days",
			mutate:      func(c *Config) { c.SummaryTrailingDays = 0 },
			wantErr:     true,
			errorString: "invalid summary trailing days 0: must be positive",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestLoad(t *testing.T) {
	t.Run("should use defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "DATA_BACKEND", "SUMMARY_DEFAULT_WINDOW", "SUMMARY_TRAILING_DAYS", "QUERY_TIMEOUT", "CORS_ALLOW_ORIGINS"} {
			t.Setenv(key, "")
		}

		cfg := Load()
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "postgres", cfg.DataBackend)
		assert.Equal(t, "trailing", cfg.SummaryDefaultWindow)
		assert.Equal(t, 30, cfg.SummaryTrailingDays)
		assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowOrigins)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("should read environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("SUMMARY_DEFAULT_WINDOW", "all")
		t.Setenv("SUMMARY_TRAILING_DAYS", "7")
		t.Setenv("QUERY_TIMEOUT", "3s")
		t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("SWAGGER_ENABLED", "false")

		cfg := Load()
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "memory", cfg.DataBackend)
		assert.Equal(t, "all", cfg.SummaryDefaultWindow)
		assert.Equal(t, 7, cfg.SummaryTrailingDays)
		assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
		assert.False(t, cfg.SwaggerEnabled)
	})

	t.Run("should ignore malformed numbers", func(t *testing.T) {
		t.Setenv("SUMMARY_TRAILING_DAYS", "many")
		t.Setenv("QUERY_TIMEOUT", "soon")

		cfg := Load()
		assert.Equal(t, 30, cfg.SummaryTrailingDays)
		assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
	})
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DatabaseURL())
}
