package offers

import (
	"context"
	"errors"
	"time"

	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/logger"
)

// CatalogStore is the durable per-market catalog cache the resolver reads
// through. Implementations report storage I/O failures as
// domain.ErrCacheUnavailable, never as a cache miss.
type CatalogStore interface {
	Get(ctx context.Context, marketID string) (*domain.Catalog, error)
	Put(ctx context.Context, marketID string, catalog *domain.Catalog) error
}

// CatalogFetcher fetches a market's catalog from the network.
type CatalogFetcher interface {
	Fetch(ctx context.Context, marketID string) (*domain.Catalog, error)
}

// Resolver answers "give me a currently-valid catalog for market M". The
// cache is a performance optimization, never a correctness override: an
// expired cached catalog is never returned, even when the network is down.
type Resolver struct {
	store   CatalogStore
	fetcher CatalogFetcher
	log     logger.Interface
}

// NewResolver creates a catalog resolver.
func NewResolver(store CatalogStore, fetcher CatalogFetcher, log logger.Interface) *Resolver {
	return &Resolver{
		store:   store,
		fetcher: fetcher,
		log:     log.WithComponent("resolver"),
	}
}

// Resolve returns a catalog for the market that is valid at now, preferring
// the cache and falling back to the network. A fresh fetch is persisted
// before returning. Fetch failures propagate unchanged; a fetch result whose
// window already closed is rejected as a parse failure.
func (r *Resolver) Resolve(ctx context.Context, marketID string, now time.Time) (*domain.Catalog, error) {
	cached, err := r.store.Get(ctx, marketID)
	switch {
	case err == nil:
		if cached.ValidAt(now) {
			r.log.Debug("Catalog cache hit", "market_id", marketID, "valid_until", cached.ValidUntil)
			return cached, nil
		}
		r.log.Debug("Cached catalog expired", "market_id", marketID, "valid_until", cached.ValidUntil)
	case errors.Is(err, domain.ErrCatalogNotCached):
		r.log.Debug("No cached catalog", "market_id", marketID)
	case errors.Is(err, domain.ErrCacheUnavailable):
		// Resolution continues via the network; the cache read failure is
		// surfaced here instead of being passed off as a miss.
		r.log.Error("Catalog cache unavailable", "market_id", marketID, "error", err)
	default:
		r.log.Error("Unexpected catalog cache error", "market_id", marketID, "error", err)
	}

	fetched, fetchErr := r.fetcher.Fetch(ctx, marketID)
	if fetchErr != nil {
		return nil, fetchErr
	}

	if !fetched.ValidAt(now) {
		// Upstream published a window that already closed. Returning it
		// would hand the caller a catalog it must not match against.
		r.log.Warn("Fetched catalog already expired", "market_id", marketID, "valid_until", fetched.ValidUntil)
		return nil, NewParseError(marketID, errCatalogExpired)
	}

	if putErr := r.store.Put(ctx, marketID, fetched); putErr != nil {
		// The fetch result outranks cache bookkeeping: log and return the
		// fresh catalog anyway.
		r.log.Error("Failed to cache fetched catalog", "market_id", marketID, "error", putErr)
	}

	return fetched, nil
}
