// Package notify provides notification delivery configuration.
package notify

import (
	"errors"
	"time"
)

// DefaultWebhookTimeout bounds one webhook delivery attempt.
const DefaultWebhookTimeout = 10 * time.Second

// Config holds notification delivery configuration.
type Config struct {
	// WebhookURL, when set, receives a JSON POST for every notification.
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
	// WebhookTimeout bounds one webhook delivery attempt.
	WebhookTimeout time.Duration `yaml:"webhook_timeout" mapstructure:"webhook_timeout"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		WebhookTimeout: DefaultWebhookTimeout,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.WebhookURL != "" && c.WebhookTimeout <= 0 {
		return errors.New("webhook timeout must be positive")
	}
	return nil
}
