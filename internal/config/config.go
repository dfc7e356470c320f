package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
	USGSInterval      time.Duration `env:"USGS_INTERVAL" envDefault:"1m"`
	GDELTInterval     time.Duration `env:"GDELT_INTERVAL" envDefault:"5m"`
	ACLEDInterval     time.Duration `env:"ACLED_INTERVAL" envDefault:"5m"`
	ReliefWebInterval time.Duration `env:"RELIEFWEB_INTERVAL" envDefault:"10m"`

	// ACLED credentials. When either is missing the source serves its
	// bundled fallback dataset and reports degraded health.
	ACLEDKey   string `env:"ACLED_KEY"`
	ACLEDEmail string `env:"ACLED_EMAIL"`

	ReliefWebAppName string `env:"RELIEFWEB_APP_NAME" envDefault:"begdar"`

	// PushedEventCap bounds how many approved community reports the feed
	// retains before dropping the oldest.
	PushedEventCap int `env:"PUSHED_EVENT_CAP" envDefault:"100"`

	// Kafka consumption of approved community reports is optional; it is
	// enabled only when brokers are configured.
	KafkaBrokers      []string `env:"KAFKA_BROKERS"`
	KafkaReportsTopic string   `env:"KAFKA_REPORTS_TOPIC" envDefault:"approved-reports"`
	KafkaGroupID      string   `env:"KAFKA_GROUP_ID" envDefault:"begdar-monitor"`
}

// KafkaEnabled reports whether the approved-report consumer should run.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.FetchTimeout <= 0 {
		return nil, errors.New("FETCH_TIMEOUT must be positive")
	}
	for name, d := range map[string]time.Duration{
		"USGS_INTERVAL":      cfg.USGSInterval,
		"GDELT_INTERVAL":     cfg.GDELTInterval,
		"ACLED_INTERVAL":     cfg.ACLEDInterval,
		"RELIEFWEB_INTERVAL": cfg.ReliefWebInterval,
	} {
		if d <= 0 {
			return nil, fmt.Errorf("%s must be positive", name)
		}
	}
	if cfg.PushedEventCap <= 0 {
		return nil, errors.New("PUSHED_EVENT_CAP must be positive")
	}
	if cfg.KafkaEnabled() && cfg.KafkaReportsTopic == "" {
		return nil, errors.New("KAFKA_REPORTS_TOPIC is required when KAFKA_BROKERS is set")
	}
	if (cfg.ACLEDKey == "") != (cfg.ACLEDEmail == "") {
		return nil, errors.New("ACLED_KEY and ACLED_EMAIL must be set together")
	}

	return cfg, nil
}
