// Package sync provides configuration for the offer sync engine.
package sync

import (
	"errors"
	"fmt"
	"time"
)

// Default configuration values
const (
	// DefaultOffersURL is the upstream offers endpoint. The market ID and
	// result limit are appended as query parameters per request.
	DefaultOffersURL = "https://www.edeka.de/eh/service/eh/offers"
	// DefaultFetchTimeout bounds a single catalog fetch (connect + read).
	DefaultFetchTimeout = 9 * time.Second
	// DefaultCycleDeadline bounds one whole sync cycle across all markets.
	DefaultCycleDeadline = 5 * time.Minute
	// DefaultWorkerCount is the number of concurrent per-market resolutions.
	DefaultWorkerCount = 4
	// DefaultRetryDelay is how long to wait after a cycle in which no
	// market could be reached.
	DefaultRetryDelay = time.Hour
	// DefaultCheckWeekday is the weekly check day.
	DefaultCheckWeekday = time.Monday
	// DefaultCheckHour is the local hour of day the weekly check fires.
	DefaultCheckHour = 9
	// DefaultWatchlistFile is the file-backed watchlist location.
	DefaultWatchlistFile = "watchlist.yaml"
)

// Config holds the offer sync engine configuration.
type Config struct {
	// OffersURL is the upstream offers API endpoint.
	OffersURL string `yaml:"offers_url" mapstructure:"offers_url"`
	// FetchTimeout is the per-request timeout for catalog fetches.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	// CycleDeadline is the overall deadline for one sync cycle.
	CycleDeadline time.Duration `yaml:"cycle_deadline" mapstructure:"cycle_deadline"`
	// WorkerCount bounds concurrent per-market resolutions within a cycle.
	WorkerCount int `yaml:"worker_count" mapstructure:"worker_count"`
	// RetryDelay is the re-arm delay after a full-outage cycle.
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	// CheckWeekday is the weekday the regular check runs (0=Sunday..6=Saturday).
	CheckWeekday int `yaml:"check_weekday" mapstructure:"check_weekday"`
	// CheckHour is the local hour of day the regular check runs.
	CheckHour int `yaml:"check_hour" mapstructure:"check_hour"`
	// WatchlistFile is the path of the watchlist YAML file.
	WatchlistFile string `yaml:"watchlist_file" mapstructure:"watchlist_file"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		OffersURL:     DefaultOffersURL,
		FetchTimeout:  DefaultFetchTimeout,
		CycleDeadline: DefaultCycleDeadline,
		WorkerCount:   DefaultWorkerCount,
		RetryDelay:    DefaultRetryDelay,
		CheckWeekday:  int(DefaultCheckWeekday),
		CheckHour:     DefaultCheckHour,
		WatchlistFile: DefaultWatchlistFile,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OffersURL == "" {
		return errors.New("offers URL cannot be empty")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}
	if c.CycleDeadline <= 0 {
		return errors.New("cycle deadline must be positive")
	}
	if c.WorkerCount < 1 {
		return errors.New("worker count must be at least 1")
	}
	if c.RetryDelay <= 0 {
		return errors.New("retry delay must be positive")
	}
	if c.CheckWeekday < 0 || c.CheckWeekday > 6 {
		return fmt.Errorf("check weekday out of range: %d", c.CheckWeekday)
	}
	if c.CheckHour < 0 || c.CheckHour > 23 {
		return fmt.Errorf("check hour out of range: %d", c.CheckHour)
	}
	if c.WatchlistFile == "" {
		return errors.New("watchlist file cannot be empty")
	}
	return nil
}
