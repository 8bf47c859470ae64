// Package common provides shared utilities for command implementations.
package common

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/offerwatch/offerwatch/internal/config"
	"github.com/offerwatch/offerwatch/internal/database"
	"github.com/offerwatch/offerwatch/internal/logger"
)

var (
	// ErrLoggerRequired is returned when CommandDeps.Logger is nil
	ErrLoggerRequired = errors.New("logger is required")
	// ErrConfigRequired is returned when CommandDeps.Config is nil
	ErrConfigRequired = errors.New("config is required")
)

// CommandDeps holds common dependencies for all commands.
// Use this instead of context.Value for type-safe dependency injection.
type CommandDeps struct {
	Logger logger.Interface
	Config config.Interface
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps creates CommandDeps by loading config and creating the logger.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.GetLoggerConfig())
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	return CommandDeps{Logger: log, Config: cfg}, nil
}

// OpenDatabase connects to Postgres using the configured credentials.
func (d CommandDeps) OpenDatabase() (*sqlx.DB, error) {
	dbCfg := d.Config.GetDatabaseConfig()
	db, err := database.NewPostgresConnection(database.Config{
		Host:     dbCfg.Host,
		Port:     dbCfg.Port,
		User:     dbCfg.User,
		Password: dbCfg.Password,
		DBName:   dbCfg.DBName,
		SSLMode:  dbCfg.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
