// Package schedule implements commands for inspecting and clearing the
// persisted wake schedule.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/offerwatch/offerwatch/cmd/common"
	"github.com/offerwatch/offerwatch/internal/database"
	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/scheduler"
)

// Command returns the schedule command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect or clear the persisted wake schedule",
	}

	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newArmCmd())
	cmd.AddCommand(newCancelCmd())

	return cmd
}

// newStatusCmd creates the status subcommand.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted next fire time",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo, cleanup, err := openScheduleRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := repo.Get(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrScheduleNotArmed) {
					fmt.Println("schedule: not armed")
					return nil
				}
				return err
			}

			fmt.Printf("schedule: armed\n  next fire at: %s (in %s)\n  last outcome: %s\n",
				state.NextFireAt.Format(time.RFC3339),
				time.Until(state.NextFireAt).Round(time.Second),
				state.LastOutcome,
			)
			return nil
		},
	}
}

// newArmCmd creates the arm subcommand.
func newArmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arm",
		Short: "Arm the next regular check",
		Long: `Persist the next regular check time. A running daemon picks the new
fire time up on its next due check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, repo, cleanup, err := openScheduleRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			syncCfg := deps.Config.GetSyncConfig()
			next := scheduler.NextWeeklyCheck(
				time.Now(),
				time.Weekday(syncCfg.CheckWeekday),
				syncCfg.CheckHour,
			)

			if err := repo.Put(cmd.Context(), &domain.ScheduleState{NextFireAt: next}); err != nil {
				return err
			}
			fmt.Printf("schedule armed: next fire at %s\n", next.Format(time.RFC3339))
			return nil
		},
	}
}

// newCancelCmd creates the cancel subcommand.
func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Clear the persisted schedule so no wake fires",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo, cleanup, err := openScheduleRepo()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := repo.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("schedule cleared")
			return nil
		},
	}
}

// openScheduleRepo opens the database and returns the schedule repository
// plus a cleanup func.
func openScheduleRepo() (common.CommandDeps, *database.ScheduleRepository, func(), error) {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return common.CommandDeps{}, nil, nil, err
	}

	db, err := deps.OpenDatabase()
	if err != nil {
		return common.CommandDeps{}, nil, nil, err
	}

	return deps, database.NewScheduleRepository(db), func() { db.Close() }, nil
}
