package config

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/streamkit/errors"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/paginate"
	"github.com/kbukum/streamkit/resilience"
)

// Config is the root streamkit configuration.
type Config struct {
	Pager     PagerConfig     `mapstructure:"pager"`
	Log       logger.Config   `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// PagerConfig configures one pagination pipeline.
type PagerConfig struct {
	// Size is the fixed page length.
	Size int `mapstructure:"size" validate:"gte=0"`
	// StartPage is the first page number of each epoch.
	StartPage int `mapstructure:"start_page" validate:"gte=1"`
	// Padding pads the epoch-start snapshot to Size with placeholders.
	Padding bool `mapstructure:"padding"`
	// Retry configures fetch retries. Disabled when MaxAttempts <= 1.
	Retry RetryConfig `mapstructure:"retry"`
}

// RetryConfig configures fetch retry behavior.
type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts" validate:"gte=0"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" validate:"gte=0"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff" validate:"gte=0"`
	BackoffFactor  float64       `mapstructure:"backoff_factor" validate:"gte=0"`
	Jitter         float64       `mapstructure:"jitter" validate:"gte=0,lte=1"`
}

// TelemetryConfig configures the OTLP exporters.
type TelemetryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Pager: PagerConfig{
			Size:      20,
			StartPage: 1,
			Padding:   true,
		},
		Log: logger.Config{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "streamkit",
			Endpoint:    "localhost:4318",
			Insecure:    true,
			SampleRate:  1.0,
		},
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return errors.InvalidConfig(first.Namespace() + " failed " + first.Tag() + " validation").
				WithCause(err)
		}
		return errors.InvalidConfig("configuration validation failed").WithCause(err)
	}
	if err := c.Log.Validate(); err != nil {
		return errors.InvalidConfig(err.Error()).WithCause(err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// PagerOptions converts the pager configuration into paginate options.
func (c PagerConfig) PagerOptions() []paginate.PagerOption {
	opts := []paginate.PagerOption{
		paginate.WithPadding(c.Padding),
	}
	if c.Retry.MaxAttempts > 1 {
		opts = append(opts, paginate.WithRetry(c.Retry.Resilience()))
	}
	return opts
}

// Resilience converts the retry configuration to a resilience.RetryConfig.
func (c RetryConfig) Resilience() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	if c.MaxAttempts > 0 {
		cfg.MaxAttempts = c.MaxAttempts
	}
	if c.InitialBackoff > 0 {
		cfg.InitialBackoff = c.InitialBackoff
	}
	if c.MaxBackoff > 0 {
		cfg.MaxBackoff = c.MaxBackoff
	}
	if c.BackoffFactor > 0 {
		cfg.BackoffFactor = c.BackoffFactor
	}
	if c.Jitter > 0 {
		cfg.Jitter = c.Jitter
	}
	return cfg
}
