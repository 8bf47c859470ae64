// Package match implements the substring matching engine between watched
// products and offer text.
package match

import (
	"strings"

	"github.com/offerwatch/offerwatch/internal/domain"
)

// Result is one watched product's hit against a catalog offer.
type Result struct {
	Product string
	Offer   domain.Offer
}

// Match returns every (watched product, offer) pair where the normalized
// product token is a substring of the offer's title or description.
// Tokens are trimmed and lowercased; comparison is case-insensitive. An
// offer appearing under several tokens is reported once per token — the
// caller reports matches per product. Catalog order is preserved within
// each token. Empty inputs yield an empty result, never an error.
func Match(catalog *domain.Catalog, watched []string) []Result {
	results := make([]Result, 0)
	if catalog == nil || len(catalog.Offers) == 0 || len(watched) == 0 {
		return results
	}

	for _, product := range watched {
		token := strings.ToLower(strings.TrimSpace(product))
		if token == "" {
			continue
		}

		for _, offer := range catalog.Offers {
			if strings.Contains(strings.ToLower(offer.Title), token) ||
				strings.Contains(strings.ToLower(offer.Description), token) {
				results = append(results, Result{Product: product, Offer: offer})
			}
		}
	}

	return results
}

// Offers extracts just the offers from a result set, in result order.
func Offers(results []Result) []domain.Offer {
	offers := make([]domain.Offer, 0, len(results))
	for _, r := range results {
		offers = append(offers, r.Offer)
	}
	return offers
}
