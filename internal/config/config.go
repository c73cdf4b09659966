// Package config reads the service settings from the environment, optionally
// seeded from .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const minShutdownTimeout = time.Second

// Config holds every setting of the service.
type Config struct {
	AppPort         string
	ServiceName     string
	LogLevel        string
	LogFormat       string
	RabbitMQURL     string
	Exchange        string
	AuditQueue      string
	GraphQLMaxDepth int
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// EventsEnabled reports whether domain events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// LoadDotEnv loads .env.local and then .env from dir when they exist.
// Variables already set in the environment win.
func LoadDotEnv(dir string) {
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	_ = godotenv.Load(dir + ".env.local")
	_ = godotenv.Load(dir + ".env")
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("SERVICE_NAME", "socialdb")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "social.events")
	v.SetDefault("RABBITMQ_AUDIT_QUEUE", "social.audit")
	v.SetDefault("GRAPHQL_MAX_DEPTH", 10)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// Load applies the defaults, binds the environment and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		ServiceName:     v.GetString("SERVICE_NAME"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:       strings.ToLower(v.GetString("LOG_FORMAT")),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		Exchange:        v.GetString("RABBITMQ_EXCHANGE"),
		AuditQueue:      v.GetString("RABBITMQ_AUDIT_QUEUE"),
		GraphQLMaxDepth: v.GetInt("GRAPHQL_MAX_DEPTH"),
		MetricsEnabled:  v.GetBool("METRICS_ENABLED"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if !strings.Contains(c.AppPort, ":") {
		c.AppPort = ":" + c.AppPort
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.GraphQLMaxDepth < 1 {
		return fmt.Errorf("GRAPHQL_MAX_DEPTH must be positive, got %d", c.GraphQLMaxDepth)
	}
	// a bare number is read as nanoseconds
	if c.ShutdownTimeout < minShutdownTimeout {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be at least %s and carry a unit such as 10s, got %s", minShutdownTimeout, c.ShutdownTimeout)
	}
	if c.EventsEnabled() && c.Exchange == "" {
		return fmt.Errorf("RABBITMQ_EXCHANGE is required when RABBITMQ_URL is set")
	}
	return nil
}
