package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerwatch/offerwatch/internal/database"
	"github.com/offerwatch/offerwatch/internal/domain"
)

func newCatalogRepo(t *testing.T) (*database.CatalogRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return database.NewCatalogRepository(sqlxDB), mock
}

const cachedPayload = `{
	"gueltig_von": 1767600000000,
	"gueltig_bis": 1768204800000,
	"docs": [
		{"titel": "Markenbutter 250g", "preis": 1.69, "beschreibung": "Deutsche Markenbutter", "bild_app": "https://img.example/butter.jpg"}
	]
}`

func TestCatalogRepository_Get(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM catalogs WHERE market_id = $1`)).
		WithArgs("10001").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(cachedPayload))

	catalog, err := repo.Get(context.Background(), "10001")
	require.NoError(t, err)

	assert.Equal(t, "10001", catalog.MarketID)
	require.Len(t, catalog.Offers, 1)
	assert.Equal(t, "Markenbutter 250g", catalog.Offers[0].Title)
	assert.Equal(t, time.UnixMilli(1768204800000).UTC(), catalog.ValidUntil.UTC())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_Get_NotCached(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM catalogs WHERE market_id = $1`)).
		WithArgs("99999").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := repo.Get(context.Background(), "99999")
	assert.ErrorIs(t, err, domain.ErrCatalogNotCached)
	assert.NotErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestCatalogRepository_Get_StorageFailure(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM catalogs WHERE market_id = $1`)).
		WithArgs("10001").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "10001")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	assert.NotErrorIs(t, err, domain.ErrCatalogNotCached)
}

func TestCatalogRepository_Get_CorruptPayload(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload FROM catalogs WHERE market_id = $1`)).
		WithArgs("10001").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"gueltig_von": 1,`))

	_, err := repo.Get(context.Background(), "10001")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestCatalogRepository_Put(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	catalog := &domain.Catalog{
		MarketID:   "10001",
		ValidFrom:  time.UnixMilli(1767600000000),
		ValidUntil: time.UnixMilli(1768204800000),
		Offers:     []domain.Offer{{Title: "Vollmilch 1L", Price: 1.09}},
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO catalogs`)).
		WithArgs("10001", sqlmock.AnyArg(), catalog.ValidFrom, catalog.ValidUntil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "10001", catalog))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_Put_StorageFailure(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	catalog := &domain.Catalog{
		MarketID:   "10001",
		ValidFrom:  time.Now(),
		ValidUntil: time.Now().Add(24 * time.Hour),
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO catalogs`)).
		WillReturnError(errors.New("deadlock detected"))

	err := repo.Put(context.Background(), "10001", catalog)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}
