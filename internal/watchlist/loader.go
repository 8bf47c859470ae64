package watchlist

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/offerwatch/offerwatch/internal/domain"
)

var (
	// ErrMissingMarketID indicates a market entry without an id.
	ErrMissingMarketID = errors.New("market missing id")
	// ErrMissingMarketName indicates a market entry without a name.
	ErrMissingMarketName = errors.New("market missing name")
)

// marketEntry is a market as written in the watchlist file.
type marketEntry struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	Street     string `mapstructure:"street"`
	PostalCode string `mapstructure:"postal_code"`
	City       string `mapstructure:"city"`
}

// fileFormat is the watchlist file layout.
type fileFormat struct {
	Markets  []marketEntry `mapstructure:"markets"`
	Products []string      `mapstructure:"products"`
}

// FileProvider is the file-backed watchlist collaborator. Reads return the
// snapshot of the last successful load; Reload swaps it atomically.
type FileProvider struct {
	path string

	mu       sync.RWMutex
	markets  []domain.Market
	products []string
}

// NewFileProvider loads the watchlist file at path.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the watchlist file. On failure the previous snapshot is kept.
func (p *FileProvider) Reload() error {
	markets, products, err := loadFile(p.path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.markets = markets
	p.products = products
	p.mu.Unlock()

	return nil
}

// FavoriteMarkets returns the markets the user monitors.
func (p *FileProvider) FavoriteMarkets() []domain.Market {
	p.mu.RLock()
	defer p.mu.RUnlock()

	markets := make([]domain.Market, len(p.markets))
	copy(markets, p.markets)
	return markets
}

// WatchedProducts returns the product tokens the user wants alerts for.
func (p *FileProvider) WatchedProducts() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	products := make([]string, len(p.products))
	copy(products, p.products)
	return products
}

// loadFile reads and validates a watchlist file.
func loadFile(path string) ([]domain.Market, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read watchlist file: %w", err)
	}
	return parse(data)
}

// parse decodes the YAML document and validates every entry.
func parse(data []byte) ([]domain.Market, []string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse watchlist yaml: %w", err)
	}

	var file fileFormat
	if err := mapstructure.Decode(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("decode watchlist: %w", err)
	}

	markets := make([]domain.Market, 0, len(file.Markets))
	for i, entry := range file.Markets {
		if entry.ID == "" {
			return nil, nil, fmt.Errorf("market %d: %w", i, ErrMissingMarketID)
		}
		if entry.Name == "" {
			return nil, nil, fmt.Errorf("market %d: %w", i, ErrMissingMarketName)
		}
		markets = append(markets, domain.Market{
			ID:         entry.ID,
			Name:       entry.Name,
			Street:     entry.Street,
			PostalCode: entry.PostalCode,
			City:       entry.City,
		})
	}

	products := make([]string, 0, len(file.Products))
	for _, product := range file.Products {
		if trimmed := strings.TrimSpace(product); trimmed != "" {
			products = append(products, trimmed)
		}
	}

	return markets, products, nil
}
