// Package cmd implements the command-line interface for OfferWatch.
// It provides the root command and subcommands for running the offer sync
// daemon and inspecting its state.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/offerwatch/offerwatch/cmd/check"
	"github.com/offerwatch/offerwatch/cmd/markets"
	"github.com/offerwatch/offerwatch/cmd/offers"
	cmdschedule "github.com/offerwatch/offerwatch/cmd/schedule"
	"github.com/offerwatch/offerwatch/cmd/serve"
	"github.com/offerwatch/offerwatch/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// rootCmd represents the root command for the OfferWatch CLI.
	rootCmd = &cobra.Command{
		Use:   "offerwatch",
		Short: "Offer catalog watcher and notifier",
		Long: `OfferWatch periodically checks whether watched products appear in the
promotional offer catalogs of favorite markets and notifies on matches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := config.InitializeViper(cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml, ./config/config.yaml, or /etc/offerwatch/config.yaml)",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("offerwatch version %s\n", Version)
		},
	})

	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(check.Command())
	rootCmd.AddCommand(offers.Command())
	rootCmd.AddCommand(markets.Command())
	rootCmd.AddCommand(cmdschedule.Command())
}
