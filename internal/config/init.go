package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	syncconfig "github.com/offerwatch/offerwatch/internal/config/sync"
)

// InitializeViper initializes Viper configuration from environment variables
// and config files. This must be called before LoadConfig().
func InitializeViper(cfgFile string) error {
	loadEnvFile()
	setupViper(cfgFile)
	setDefaults()
	readConfigFile()
	return nil
}

// loadEnvFile loads .env file (ignores error if file doesn't exist).
func loadEnvFile() {
	_ = godotenv.Load()
}

// setupViper configures Viper for environment variable and config file reading.
func setupViper(cfgFile string) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/offerwatch")
}

// setDefaults registers defaults used when neither environment variables nor
// the config file provide a value.
func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")

	viper.SetDefault("sync.offers_url", syncconfig.DefaultOffersURL)
	viper.SetDefault("sync.fetch_timeout", syncconfig.DefaultFetchTimeout)
	viper.SetDefault("sync.cycle_deadline", syncconfig.DefaultCycleDeadline)
	viper.SetDefault("sync.worker_count", syncconfig.DefaultWorkerCount)
	viper.SetDefault("sync.retry_delay", syncconfig.DefaultRetryDelay)
	viper.SetDefault("sync.check_weekday", int(syncconfig.DefaultCheckWeekday))
	viper.SetDefault("sync.check_hour", syncconfig.DefaultCheckHour)
	viper.SetDefault("sync.watchlist_file", syncconfig.DefaultWatchlistFile)
}

// readConfigFile reads the config file if present. A missing file is fine;
// defaults and environment variables cover everything.
func readConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config file: %v\n", err)
		}
	}
}
