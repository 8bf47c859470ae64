// Package serve implements the daemon command: the wake scheduler plus the
// read-only status API, run until interrupted.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/offerwatch/offerwatch/cmd/common"
	"github.com/offerwatch/offerwatch/internal/api"
	"github.com/offerwatch/offerwatch/internal/database"
	"github.com/offerwatch/offerwatch/internal/logger"
	"github.com/offerwatch/offerwatch/internal/scheduler"
)

const (
	shutdownTimeout        = 30 * time.Second
	errorChannelBufferSize = 1
	signalChannelBuffer    = 1
)

// Command returns the serve command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the offer watch daemon",
		Long: `Run the wake scheduler and the status API until interrupted.
Persisted schedule state is recovered on startup; a missed wake fires
immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}
			return run(cmd.Context(), deps)
		},
	}
}

// run wires everything and blocks until a shutdown signal arrives.
func run(ctx context.Context, deps common.CommandDeps) error {
	db, err := deps.OpenDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err = database.MigrateSchema(ctx, db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	engine, err := common.BuildEngine(deps, db)
	if err != nil {
		return err
	}

	sched := scheduler.NewScheduler(
		engine.Schedule,
		engine.Orchestrator,
		deps.Logger,
		schedulerConfig(deps),
	)
	if err = sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	// First run on a fresh database: arm the regular check so the daemon
	// does not sit idle until someone schedules it externally.
	if err = sched.EnsureArmed(ctx); err != nil {
		return fmt.Errorf("arm schedule: %w", err)
	}

	handler := api.NewStatusHandler(sched, engine.Catalogs, deps.Logger)
	server := api.NewServer(deps.Config.GetServerConfig(), api.NewRouter(handler, deps.Logger))

	deps.Logger.Info("Starting status API", "addr", server.Addr)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return waitForShutdown(deps.Logger, server, sched, errChan)
}

// schedulerConfig maps the sync config onto the scheduler's re-arm policy.
func schedulerConfig(deps common.CommandDeps) scheduler.Config {
	syncCfg := deps.Config.GetSyncConfig()
	return scheduler.Config{
		RetryDelay:   syncCfg.RetryDelay,
		CheckWeekday: time.Weekday(syncCfg.CheckWeekday),
		CheckHour:    syncCfg.CheckHour,
	}
}

// waitForShutdown blocks until a signal or server error, then shuts down
// the scheduler first and the HTTP server second.
func waitForShutdown(
	log logger.Interface,
	server *http.Server,
	sched *scheduler.Scheduler,
	errChan chan error,
) error {
	sigChan := make(chan os.Signal, signalChannelBuffer)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		log.Error("Status API error", "error", serverErr)
		sched.Stop()
		return fmt.Errorf("status API error: %w", serverErr)
	case sig := <-sigChan:
		log.Info("Shutdown signal received", "signal", sig.String())
	}

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Stopping status API")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop status API", "error", err)
		return fmt.Errorf("failed to stop status API: %w", err)
	}

	log.Info("Daemon stopped")
	return nil
}
