package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMemory   = "memory"
)

// Identity modes
const (
	AuthModeGateway = "gateway"
	AuthModeJWT     = "jwt"
	AuthModeHeader  = "header"
)

// DefaultTableBaseName is used when TABLE_BASE_NAME is unset
const DefaultTableBaseName = "todosTable"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`

	// Storage
	TableBaseName    string `yaml:"tableBaseName"`
	TableEnv         string `yaml:"env"`
	TableRegion      string `yaml:"tableRegion"`
	DynamoDBEndpoint string `yaml:"dynamodbEndpoint"`
	StoreDriver      string `yaml:"storeDriver"`

	// Events
	EventBusName string `yaml:"eventBusName"`

	// Authentication
	AuthMode     string `yaml:"authMode"`
	AuthRequired bool   `yaml:"authRequired"`
	JWTSecret    string `yaml:"jwtSecret"`
	JWTIssuer    string `yaml:"jwtIssuer"`

	// Behaviour
	ErrorStatusMode    string `yaml:"errorStatusMode"`
	ToggleMaxRetries   int    `yaml:"toggleMaxRetries"`
	RateLimitPerMinute int    `yaml:"rateLimitPerMinute"`

	// Logging
	LogLevel string `yaml:"logLevel"`

	// Observability
	EnableMetrics    bool   `yaml:"enableMetrics"`
	MetricsNamespace string `yaml:"metricsNamespace"`
	EnableTracing    bool   `yaml:"enableTracing"`
}

// defaults returns the configuration used before any source is applied
func defaults() *Config {
	return &Config{
		Port:               "8080",
		Environment:        "development",
		TableBaseName:      DefaultTableBaseName,
		TableRegion:        "us-east-1",
		StoreDriver:        StoreDriverDynamoDB,
		AuthMode:           AuthModeGateway,
		ErrorStatusMode:    "compat",
		RateLimitPerMinute: 0,
		LogLevel:           "info",
		MetricsNamespace:   "TodosBackend",
	}
}

// LoadConfig loads configuration from a .env file, an optional YAML file
// named by CONFIG_FILE and environment variables, in that order of priority.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile overlays values from a YAML file
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides values with environment variables
func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.Debug = getEnvBool("DEBUG", c.Debug)

	c.TableBaseName = getEnv("TABLE_BASE_NAME", c.TableBaseName)
	c.TableEnv = getEnv("ENV", c.TableEnv)
	c.TableRegion = getEnv("TABLE_REGION", getEnv("AWS_REGION", c.TableRegion))
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)
	c.StoreDriver = getEnv("STORE_DRIVER", c.StoreDriver)

	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)

	c.AuthMode = getEnv("AUTH_MODE", c.AuthMode)
	c.AuthRequired = getEnvBool("AUTH_REQUIRED", c.AuthRequired)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)

	c.ErrorStatusMode = getEnv("ERROR_STATUS_MODE", c.ErrorStatusMode)
	c.ToggleMaxRetries = getEnvInt("TOGGLE_MAX_RETRIES", c.ToggleMaxRetries)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)
	c.EnableTracing = getEnvBool("TRACING_ENABLED", c.EnableTracing)
}

// TableName derives the physical table name: the base name, suffixed with
// "-<ENV>" unless ENV is unset or NONE.
func (c *Config) TableName() string {
	base := c.TableBaseName
	if base == "" {
		base = DefaultTableBaseName
	}
	if c.TableEnv == "" || c.TableEnv == "NONE" {
		return base
	}
	return base + "-" + c.TableEnv
}

// Validate checks if all configuration values are usable
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverDynamoDB, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.AuthMode {
	case AuthModeGateway, AuthModeHeader:
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	switch c.ErrorStatusMode {
	case "compat", "typed":
	default:
		return fmt.Errorf("unknown ERROR_STATUS_MODE %q", c.ErrorStatusMode)
	}

	if c.ToggleMaxRetries < 0 {
		return fmt.Errorf("TOGGLE_MAX_RETRIES must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
