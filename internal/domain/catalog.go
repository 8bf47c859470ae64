package domain

import (
	"time"
)

// Catalog is the set of offers one market has published for a bounded
// validity window. Invariant: ValidFrom <= ValidUntil.
type Catalog struct {
	MarketID   string    `json:"market_id"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	Offers     []Offer   `json:"offers"`
}

// ValidAt reports whether the catalog is still inside its validity window
// at the given time. Only the end of the window matters.
func (c *Catalog) ValidAt(now time.Time) bool {
	return now.Before(c.ValidUntil)
}
