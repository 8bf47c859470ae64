package watchlist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerwatch/offerwatch/internal/watchlist"
)

const validWatchlist = `
markets:
  - id: "10001"
    name: "EDEKA Center Hauptstraße"
    street: "Hauptstraße 12"
    postal_code: "10115"
    city: "Berlin"
  - id: "10002"
    name: "EDEKA Müller"
products:
  - Milch
  - "  Butter  "
  - ""
  - Kaffee
`

func writeWatchlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileProvider_Load(t *testing.T) {
	provider, err := watchlist.NewFileProvider(writeWatchlist(t, validWatchlist))
	require.NoError(t, err)

	markets := provider.FavoriteMarkets()
	require.Len(t, markets, 2)
	assert.Equal(t, "10001", markets[0].ID)
	assert.Equal(t, "EDEKA Center Hauptstraße", markets[0].Name)
	assert.Equal(t, "Berlin", markets[0].City)
	assert.Equal(t, "EDEKA Müller", markets[1].Name)

	products := provider.WatchedProducts()
	assert.Equal(t, []string{"Milch", "Butter", "Kaffee"}, products,
		"products are trimmed and blanks dropped")
}

func TestFileProvider_MissingFile(t *testing.T) {
	_, err := watchlist.NewFileProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFileProvider_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "market without id",
			content: "markets:\n  - name: Somewhere\n",
			wantErr: watchlist.ErrMissingMarketID,
		},
		{
			name:    "market without name",
			content: "markets:\n  - id: \"10001\"\n",
			wantErr: watchlist.ErrMissingMarketName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := watchlist.NewFileProvider(writeWatchlist(t, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFileProvider_EmptyDocument(t *testing.T) {
	provider, err := watchlist.NewFileProvider(writeWatchlist(t, "{}\n"))
	require.NoError(t, err)

	assert.Empty(t, provider.FavoriteMarkets())
	assert.Empty(t, provider.WatchedProducts())
}

func TestFileProvider_ReloadKeepsSnapshotOnFailure(t *testing.T) {
	path := writeWatchlist(t, validWatchlist)
	provider, err := watchlist.NewFileProvider(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("markets:\n  - name: broken\n"), 0o600))
	assert.Error(t, provider.Reload())

	assert.Len(t, provider.FavoriteMarkets(), 2, "failed reload must keep the last good snapshot")
	assert.Len(t, provider.WatchedProducts(), 3)
}

func TestFileProvider_ReloadPicksUpChanges(t *testing.T) {
	path := writeWatchlist(t, validWatchlist)
	provider, err := watchlist.NewFileProvider(path)
	require.NoError(t, err)

	updated := "markets:\n  - id: \"20001\"\n    name: \"EDEKA Neu\"\nproducts:\n  - Tee\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))
	require.NoError(t, provider.Reload())

	markets := provider.FavoriteMarkets()
	require.Len(t, markets, 1)
	assert.Equal(t, "20001", markets[0].ID)
	assert.Equal(t, []string{"Tee"}, provider.WatchedProducts())
}
