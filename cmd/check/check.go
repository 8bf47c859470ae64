// Package check implements the one-shot sync cycle command.
package check

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/offerwatch/offerwatch/cmd/common"
	"github.com/offerwatch/offerwatch/internal/database"
	"github.com/offerwatch/offerwatch/internal/domain"
)

// Command returns the check command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one sync cycle now",
		Long: `Run a single sync cycle immediately: resolve every favorite market's
catalog, match watched products, and notify on hits. Does not touch the
persisted schedule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			db, err := deps.OpenDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err = database.MigrateSchema(ctx, db); err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}

			engine, err := common.BuildEngine(deps, db)
			if err != nil {
				return err
			}

			outcome := engine.Orchestrator.RunCycle(ctx, time.Now())
			fmt.Printf("outcome: %s\n", outcome)

			if outcome == domain.OutcomeNetworkFailure {
				return fmt.Errorf("no market could be resolved")
			}
			return nil
		},
	}
}
