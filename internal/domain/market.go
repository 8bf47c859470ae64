package domain

// Market identifies one store location. Markets are owned by the watchlist
// collaborator; the engine only reads them, keyed by ID.
type Market struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}
