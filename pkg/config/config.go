package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrMissingAPIKey is returned when the provider API key is not configured
var ErrMissingAPIKey = errors.New("BREVO_API_KEY is not set")

// Config holds all application configuration values
type Config struct {
	Port    string `env:"PORT" env-default:"8080"`
	GinMode string `env:"GIN_MODE" env-default:"release"`

	BrevoAPIKey     string        `env:"BREVO_API_KEY" env-required:"true"`
	BrevoBaseURL    string        `env:"BREVO_BASE_URL" env-default:"https://api.brevo.com/v3"`
	BrevoListID     int64         `env:"BREVO_LIST_ID" env-default:"3"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" env-default:"10s"`

	SanityProjectID  string `env:"SANITY_PROJECT_ID"`
	SanityDataset    string `env:"SANITY_DATASET" env-default:"production"`
	SanityAPIVersion string `env:"SANITY_API_VERSION" env-default:"2024-01-01"`
	SanityUseCDN     bool   `env:"SANITY_USE_CDN" env-default:"true"`
	SanityToken      string `env:"SANITY_TOKEN"`
	// ContentFixture seeds the in-memory content store when no Sanity project is set
	ContentFixture string `env:"CONTENT_FIXTURE"`
	// ContentRefresh is how often open slideshow streams re-read the gallery
	ContentRefresh      time.Duration `env:"CONTENT_REFRESH" env-default:"5m"`
	MaxSlideshowStreams int           `env:"MAX_SLIDESHOW_STREAMS" env-default:"200"`

	RateLimitPerMinute float64  `env:"RATE_LIMIT_PER_MINUTE" env-default:"30"`
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS" env-separator:","`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// RequiredKeys lists the environment variables the server refuses to start without
var RequiredKeys = []string{"BREVO_API_KEY"}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration that would make every signup fail
func (c *Config) Validate() error {
	if c.BrevoAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BrevoListID <= 0 {
		return fmt.Errorf("BREVO_LIST_ID must be positive, got %d", c.BrevoListID)
	}
	if c.MaxSlideshowStreams <= 0 {
		return fmt.Errorf("MAX_SLIDESHOW_STREAMS must be positive, got %d", c.MaxSlideshowStreams)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %v", c.RateLimitPerMinute)
	}
	return nil
}

// UseSanity reports whether content should come from a Sanity project
func (c *Config) UseSanity() bool {
	return c.SanityProjectID != ""
}

// Usage describes every supported environment variable
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
