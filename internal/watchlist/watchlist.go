// Package watchlist supplies the two read-only collections the sync engine
// consumes: favorite markets and watched products.
package watchlist

import (
	"github.com/offerwatch/offerwatch/internal/domain"
)

// Provider exposes the favorites/products collaborator to the engine.
// Implementations must return stable snapshots safe to use for one cycle.
type Provider interface {
	// FavoriteMarkets returns the markets the user monitors.
	FavoriteMarkets() []domain.Market
	// WatchedProducts returns the product tokens the user wants alerts for.
	WatchedProducts() []string
}

// Reloader is implemented by providers whose backing source can change while
// the engine runs. A failed reload keeps the previous snapshot.
type Reloader interface {
	Reload() error
}
