package domain

import "errors"

var (
	// ErrCatalogNotCached indicates no catalog has ever been cached for a market.
	ErrCatalogNotCached = errors.New("catalog not cached")
	// ErrCacheUnavailable indicates a storage I/O failure while reading or
	// writing the catalog cache. Never to be conflated with a cache miss.
	ErrCacheUnavailable = errors.New("catalog cache unavailable")
	// ErrScheduleNotArmed indicates no schedule state is persisted.
	ErrScheduleNotArmed = errors.New("schedule not armed")
)
