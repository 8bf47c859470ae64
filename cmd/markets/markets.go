// Package markets implements the command that lists the watchlist's
// favorite markets and watched products.
package markets

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/offerwatch/offerwatch/cmd/common"
	"github.com/offerwatch/offerwatch/internal/watchlist"
)

// Command returns the markets command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "markets",
		Short: "List favorite markets and watched products",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return err
			}

			provider, err := watchlist.NewFileProvider(deps.Config.GetSyncConfig().WatchlistFile)
			if err != nil {
				return fmt.Errorf("load watchlist: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Street", "Postal Code", "City"})

			for _, market := range provider.FavoriteMarkets() {
				t.AppendRow(table.Row{
					market.ID,
					market.Name,
					market.Street,
					market.PostalCode,
					market.City,
				})
			}
			t.Render()

			products := provider.WatchedProducts()
			fmt.Printf("\nWatched products (%d):\n", len(products))
			for _, product := range products {
				fmt.Printf("  - %s\n", product)
			}

			return nil
		},
	}
}
