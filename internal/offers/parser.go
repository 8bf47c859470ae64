package offers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/offerwatch/offerwatch/internal/domain"
)

// Parse failure causes.
var (
	errMissingValidFrom  = errors.New("missing gueltig_von")
	errMissingValidUntil = errors.New("missing gueltig_bis")
	errMissingTitle      = errors.New("offer missing titel")
	errWindowInverted    = errors.New("gueltig_von after gueltig_bis")
	errCatalogExpired    = errors.New("catalog validity window already closed")
)

// wireOffer is one entry of the upstream offers payload.
type wireOffer struct {
	Titel        *string `json:"titel"`
	Preis        float64 `json:"preis"`
	Beschreibung string  `json:"beschreibung"`
	BildApp      string  `json:"bild_app"`
}

// wireCatalog is the upstream offers payload. Validity bounds are epoch
// milliseconds. The cached form uses the exact same shape.
type wireCatalog struct {
	GueltigVon *int64      `json:"gueltig_von"`
	GueltigBis *int64      `json:"gueltig_bis"`
	Docs       []wireOffer `json:"docs"`
}

// ParseCatalog decodes an upstream offers payload into a Catalog.
// Returns a parse-class FetchError on malformed input.
func ParseCatalog(marketID string, payload []byte) (*domain.Catalog, error) {
	var wire wireCatalog
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, NewParseError(marketID, fmt.Errorf("decode payload: %w", err))
	}

	if wire.GueltigVon == nil {
		return nil, NewParseError(marketID, errMissingValidFrom)
	}
	if wire.GueltigBis == nil {
		return nil, NewParseError(marketID, errMissingValidUntil)
	}

	catalog := &domain.Catalog{
		MarketID:   marketID,
		ValidFrom:  time.UnixMilli(*wire.GueltigVon),
		ValidUntil: time.UnixMilli(*wire.GueltigBis),
		Offers:     make([]domain.Offer, 0, len(wire.Docs)),
	}

	if catalog.ValidFrom.After(catalog.ValidUntil) {
		return nil, NewParseError(marketID, errWindowInverted)
	}

	for i, doc := range wire.Docs {
		if doc.Titel == nil {
			return nil, NewParseError(marketID, fmt.Errorf("doc %d: %w", i, errMissingTitle))
		}
		catalog.Offers = append(catalog.Offers, domain.Offer{
			Title:       collapseWhitespace(*doc.Titel),
			Price:       doc.Preis,
			Description: collapseWhitespace(stripMarkup(doc.Beschreibung)),
			ImageURL:    doc.BildApp,
		})
	}

	return catalog, nil
}

// EncodeCatalog serializes a Catalog back into the wire payload shape, so a
// cached catalog round-trips through ParseCatalog.
func EncodeCatalog(catalog *domain.Catalog) ([]byte, error) {
	wire := wireCatalog{
		GueltigVon: int64Ptr(catalog.ValidFrom.UnixMilli()),
		GueltigBis: int64Ptr(catalog.ValidUntil.UnixMilli()),
		Docs:       make([]wireOffer, 0, len(catalog.Offers)),
	}

	for i := range catalog.Offers {
		offer := &catalog.Offers[i]
		title := offer.Title
		wire.Docs = append(wire.Docs, wireOffer{
			Titel:        &title,
			Preis:        offer.Price,
			Beschreibung: offer.Description,
			BildApp:      offer.ImageURL,
		})
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return payload, nil
}

// stripMarkup reduces HTML markup to plain text. Upstream descriptions may
// contain tags and entities. Input without markup passes through unchanged.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// collapseWhitespace replaces newlines with spaces and trims, matching how
// offer text is displayed in notifications.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func int64Ptr(v int64) *int64 { return &v }
