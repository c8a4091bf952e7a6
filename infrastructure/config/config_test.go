package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "ENVIRONMENT", "DEBUG", "TABLE_BASE_NAME", "ENV",
		"TABLE_REGION", "AWS_REGION", "DYNAMODB_ENDPOINT", "STORE_DRIVER", "EVENT_BUS_NAME",
		"AUTH_MODE", "AUTH_REQUIRED", "JWT_SECRET", "JWT_ISSUER", "ERROR_STATUS_MODE",
		"TOGGLE_MAX_RETRIES", "RATE_LIMIT_PER_MINUTE", "LOG_LEVEL", "ENABLE_METRICS",
		"METRICS_NAMESPACE", "TRACING_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "todosTable", cfg.TableName())
		assert.Equal(t, StoreDriverDynamoDB, cfg.StoreDriver)
		assert.Equal(t, AuthModeGateway, cfg.AuthMode)
		assert.Equal(t, "compat", cfg.ErrorStatusMode)
		assert.Equal(t, 0, cfg.ToggleMaxRetries)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("Should read environment variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TABLE_BASE_NAME", "items")
		t.Setenv("ENV", "prod")
		t.Setenv("AWS_REGION", "eu-west-1")
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("TOGGLE_MAX_RETRIES", "2")
		t.Setenv("AUTH_REQUIRED", "true")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "items-prod", cfg.TableName())
		assert.Equal(t, "eu-west-1", cfg.TableRegion)
		assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
		assert.Equal(t, 2, cfg.ToggleMaxRetries)
		assert.True(t, cfg.AuthRequired)
	})

	t.Run("Should prefer TABLE_REGION over AWS_REGION", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("AWS_REGION", "eu-west-1")
		t.Setenv("TABLE_REGION", "ap-south-1")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "ap-south-1", cfg.TableRegion)
	})

	t.Run("Should let environment override the config file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storeDriver: memory\nlogLevel: debug\nport: \"9000\"\n"), 0o600))
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("PORT", "9100")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "9100", cfg.Port)
	})

	t.Run("Should fail on a missing config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestTableName(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"Should omit suffix without ENV", Config{TableBaseName: "todosTable"}, "todosTable"},
		{"Should omit suffix for NONE", Config{TableBaseName: "todosTable", TableEnv: "NONE"}, "todosTable"},
		{"Should append ENV", Config{TableBaseName: "todosTable", TableEnv: "dev"}, "todosTable-dev"},
		{"Should fall back to the default base", Config{TableEnv: "dev"}, "todosTable-dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.TableName())
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("Should reject unknown store driver", func(t *testing.T) {
		cfg := defaults()
		cfg.StoreDriver = "postgres"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Should reject unknown auth mode", func(t *testing.T) {
		cfg := defaults()
		cfg.AuthMode = "basic"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Should require a secret for jwt mode", func(t *testing.T) {
		cfg := defaults()
		cfg.AuthMode = AuthModeJWT
		assert.Error(t, cfg.Validate())

		cfg.JWTSecret = "secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Should reject unknown error mode", func(t *testing.T) {
		cfg := defaults()
		cfg.ErrorStatusMode = "strict"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Should reject negative retries", func(t *testing.T) {
		cfg := defaults()
		cfg.ToggleMaxRetries = -1
		assert.Error(t, cfg.Validate())
	})
}
