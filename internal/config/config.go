package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Database settings. DATABASE_URL accepts a postgres:// DSN or a SQLite path.
	DatabaseURL       string `envconfig:"DATABASE_URL" default:"fsjstd-restapi.db"`
	DatabaseURLSecret string `envconfig:"DATABASE_URL_SECRET"`
	AutoMigrate       bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	PasswordHasher     string   `envconfig:"PASSWORD_HASHER" default:"bcrypt"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Course event publishing, disabled when the topic is empty. With the
	// pgmq backend the topic names the queue.
	EventsBackend     string `envconfig:"EVENTS_BACKEND" default:"pubsub"`
	CourseEventsTopic string `envconfig:"COURSE_EVENTS_TOPIC"`
	GCPProjectID      string `envconfig:"GCP_PROJECT_ID"`
}

// Event backends.
const (
	BackendPubSub = "pubsub"
	BackendPGMQ   = "pgmq"
)

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	switch strings.ToLower(c.PasswordHasher) {
	case "bcrypt", "argon2id":
	default:
		return fmt.Errorf("unsupported PASSWORD_HASHER %q", c.PasswordHasher)
	}
	switch c.EventsBackend {
	case BackendPubSub:
		if c.CourseEventsTopic != "" && c.GCPProjectID == "" {
			return fmt.Errorf("GCP_PROJECT_ID is required when COURSE_EVENTS_TOPIC is set")
		}
	case BackendPGMQ:
	default:
		return fmt.Errorf("unsupported EVENTS_BACKEND %q", c.EventsBackend)
	}
	return nil
}

// IsDevelopment reports whether the app runs in local development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// EventsEnabled reports whether course events should be published.
func (c *Config) EventsEnabled() bool {
	return c.CourseEventsTopic != ""
}
