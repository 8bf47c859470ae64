package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/offers"
)

// CatalogRepository is the durable per-market catalog cache. The payload
// column holds the upstream wire JSON so cached catalogs round-trip through
// the same parser as network responses.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Get returns the last cached catalog for a market.
// Returns domain.ErrCatalogNotCached when the market was never cached and
// domain.ErrCacheUnavailable on storage failures; the two are never conflated.
func (r *CatalogRepository) Get(ctx context.Context, marketID string) (*domain.Catalog, error) {
	var payload string
	query := `SELECT payload FROM catalogs WHERE market_id = $1`

	err := r.db.GetContext(ctx, &payload, query, marketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("market %s: %w", marketID, domain.ErrCatalogNotCached)
		}
		return nil, fmt.Errorf("%w: get catalog for market %s: %w", domain.ErrCacheUnavailable, marketID, err)
	}

	catalog, parseErr := offers.ParseCatalog(marketID, []byte(payload))
	if parseErr != nil {
		// A corrupt cached payload is as unusable as a failed read.
		return nil, fmt.Errorf("%w: decode cached catalog for market %s: %w", domain.ErrCacheUnavailable, marketID, parseErr)
	}

	return catalog, nil
}

// Put overwrites the cached catalog for a market, most-recent-wins.
func (r *CatalogRepository) Put(ctx context.Context, marketID string, catalog *domain.Catalog) error {
	payload, encodeErr := offers.EncodeCatalog(catalog)
	if encodeErr != nil {
		return fmt.Errorf("%w: encode catalog for market %s: %w", domain.ErrCacheUnavailable, marketID, encodeErr)
	}

	query := `
		INSERT INTO catalogs (market_id, payload, valid_from, valid_until, fetched_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (market_id)
		DO UPDATE SET
			payload = EXCLUDED.payload,
			valid_from = EXCLUDED.valid_from,
			valid_until = EXCLUDED.valid_until,
			fetched_at = EXCLUDED.fetched_at,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, marketID, string(payload), catalog.ValidFrom, catalog.ValidUntil)
	if err != nil {
		return fmt.Errorf("%w: put catalog for market %s: %w", domain.ErrCacheUnavailable, marketID, err)
	}

	return nil
}
