// Package offers implements the command that resolves and prints one
// market's current catalog as a table.
package offers

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/offerwatch/offerwatch/cmd/common"
	"github.com/offerwatch/offerwatch/internal/database"
	"github.com/offerwatch/offerwatch/internal/domain"
)

const maxDescriptionColumnWidth = 60

// Command returns the offers command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "offers <marketID>",
		Short: "Show the current offer catalog of a market",
		Long: `Resolve the catalog for the given market (cache first, network on
miss or expiry) and print its offers.`,
		Args: cobra.ExactArgs(1),
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

			marketID := args[0]
			catalog, err := engine.Resolver.Resolve(ctx, marketID, time.Now())
			if err != nil {
				return fmt.Errorf("resolve catalog for market %s: %w", marketID, err)
			}

			renderCatalog(catalog)
			return nil
		},
	}
}

// renderCatalog prints the catalog header and its offers in a table.
func renderCatalog(catalog *domain.Catalog) {
	fmt.Printf("Market %s: %d offers, valid %s until %s\n",
		catalog.MarketID,
		len(catalog.Offers),
		catalog.ValidFrom.Format("2006-01-02"),
		catalog.ValidUntil.Format("2006-01-02"),
	)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title", "Price", "Description"})

	for _, offer := range catalog.Offers {
		t.AppendRow(table.Row{
			offer.Title,
			fmt.Sprintf("%.2f", offer.Price),
			truncate(offer.Description, maxDescriptionColumnWidth),
		})
	}

	t.Render()
}

// truncate shortens long descriptions for table display.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
