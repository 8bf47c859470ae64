// Package config provides configuration management for the OfferWatch
// application. It handles loading, validation, and access to configuration
// values from YAML files and environment variables via Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	dbconfig "github.com/offerwatch/offerwatch/internal/config/database"
	notifyconfig "github.com/offerwatch/offerwatch/internal/config/notify"
	serverconfig "github.com/offerwatch/offerwatch/internal/config/server"
	syncconfig "github.com/offerwatch/offerwatch/internal/config/sync"
	"github.com/offerwatch/offerwatch/internal/logger"
)

// Interface defines the interface for configuration management.
type Interface interface {
	// GetServerConfig returns the status API server configuration.
	GetServerConfig() *serverconfig.Config
	// GetSyncConfig returns the offer sync engine configuration.
	GetSyncConfig() *syncconfig.Config
	// GetDatabaseConfig returns the database configuration.
	GetDatabaseConfig() *dbconfig.Config
	// GetNotifyConfig returns the notification delivery configuration.
	GetNotifyConfig() *notifyconfig.Config
	// GetLoggerConfig returns the logger configuration.
	GetLoggerConfig() *logger.Config
	// Validate validates the configuration.
	Validate() error
}

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the application configuration.
type Config struct {
	// Server holds status API server configuration
	Server *serverconfig.Config `yaml:"server"`
	// Sync holds offer sync engine configuration
	Sync *syncconfig.Config `yaml:"sync"`
	// Database holds database configuration
	Database *dbconfig.Config `yaml:"database"`
	// Notify holds notification delivery configuration
	Notify *notifyconfig.Config `yaml:"notify"`
	// Logger holds logger configuration
	Logger *logger.Config `yaml:"logger"`
}

// LoadConfig builds the application configuration from the initialized
// Viper instance. InitializeViper must have been called first.
func LoadConfig() (*Config, error) {
	v := viper.GetViper()

	cfg := &Config{
		Server:   loadServerConfig(v),
		Sync:     loadSyncConfig(v),
		Database: dbconfig.LoadFromViper(v),
		Notify:   loadNotifyConfig(v),
		Logger:   loadLoggerConfig(v),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadServerConfig reads the status API server section.
func loadServerConfig(v *viper.Viper) *serverconfig.Config {
	cfg := serverconfig.NewConfig()
	if v.IsSet("server.address") {
		cfg.Address = v.GetString("server.address")
	}
	if v.IsSet("server.read_timeout") {
		cfg.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		cfg.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.idle_timeout") {
		cfg.IdleTimeout = v.GetDuration("server.idle_timeout")
	}
	return cfg
}

// loadSyncConfig reads the sync engine section.
func loadSyncConfig(v *viper.Viper) *syncconfig.Config {
	cfg := syncconfig.NewConfig()
	if v.IsSet("sync.offers_url") {
		cfg.OffersURL = v.GetString("sync.offers_url")
	}
	if v.IsSet("sync.fetch_timeout") {
		cfg.FetchTimeout = v.GetDuration("sync.fetch_timeout")
	}
	if v.IsSet("sync.cycle_deadline") {
		cfg.CycleDeadline = v.GetDuration("sync.cycle_deadline")
	}
	if v.IsSet("sync.worker_count") {
		cfg.WorkerCount = v.GetInt("sync.worker_count")
	}
	if v.IsSet("sync.retry_delay") {
		cfg.RetryDelay = v.GetDuration("sync.retry_delay")
	}
	if v.IsSet("sync.check_weekday") {
		cfg.CheckWeekday = v.GetInt("sync.check_weekday")
	}
	if v.IsSet("sync.check_hour") {
		cfg.CheckHour = v.GetInt("sync.check_hour")
	}
	if v.IsSet("sync.watchlist_file") {
		cfg.WatchlistFile = v.GetString("sync.watchlist_file")
	}
	return cfg
}

// loadNotifyConfig reads the notification delivery section.
func loadNotifyConfig(v *viper.Viper) *notifyconfig.Config {
	cfg := notifyconfig.NewConfig()
	if v.IsSet("notify.webhook_url") {
		cfg.WebhookURL = v.GetString("notify.webhook_url")
	}
	if v.IsSet("notify.webhook_timeout") {
		cfg.WebhookTimeout = v.GetDuration("notify.webhook_timeout")
	}
	return cfg
}

// loadLoggerConfig reads the logger section.
func loadLoggerConfig(v *viper.Viper) *logger.Config {
	return &logger.Config{
		Level:       logger.Level(v.GetString("logger.level")),
		Development: v.GetBool("logger.development"),
		Encoding:    v.GetString("logger.encoding"),
	}
}

// GetServerConfig returns the status API server configuration.
func (c *Config) GetServerConfig() *serverconfig.Config {
	return c.Server
}

// GetSyncConfig returns the offer sync engine configuration.
func (c *Config) GetSyncConfig() *syncconfig.Config {
	return c.Sync
}

// GetDatabaseConfig returns the database configuration.
func (c *Config) GetDatabaseConfig() *dbconfig.Config {
	return c.Database
}

// GetNotifyConfig returns the notification delivery configuration.
func (c *Config) GetNotifyConfig() *notifyconfig.Config {
	return c.Notify
}

// GetLoggerConfig returns the logger configuration.
func (c *Config) GetLoggerConfig() *logger.Config {
	return c.Logger
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := c.Notify.Validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
