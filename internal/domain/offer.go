// Package domain provides domain models used across the application.
package domain

// Offer represents a single promotional offer published by a market.
// Offers are created by catalog parsing and never mutated afterwards.
type Offer struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}
