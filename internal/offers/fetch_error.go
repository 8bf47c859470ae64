// Package offers provides catalog fetching, parsing, and resolution for
// market offer catalogs.
package offers

import (
	"errors"
	"fmt"
)

// ErrorType classifies catalog fetch failures.
type ErrorType string

const (
	// ErrTypeNetwork covers transport errors, timeouts, and non-2xx statuses.
	ErrTypeNetwork ErrorType = "network"
	// ErrTypeParse covers malformed or incomplete payloads.
	ErrTypeParse ErrorType = "parse"
)

// FetchError represents a classified catalog fetch failure.
type FetchError struct {
	Type       ErrorType
	MarketID   string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("catalog fetch %s: HTTP %d for market %s", e.Type, e.StatusCode, e.MarketID)
	}
	return fmt.Sprintf("catalog fetch %s: %s for market %s", e.Type, e.Cause, e.MarketID)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// NewNetworkError creates a FetchError for transport-level failures.
func NewNetworkError(marketID string, cause error) *FetchError {
	return &FetchError{Type: ErrTypeNetwork, MarketID: marketID, Cause: cause}
}

// NewHTTPStatusError creates a network FetchError from a non-2xx status.
func NewHTTPStatusError(marketID string, statusCode int) *FetchError {
	return &FetchError{
		Type:       ErrTypeNetwork,
		MarketID:   marketID,
		StatusCode: statusCode,
		Cause:      fmt.Errorf("HTTP %d", statusCode),
	}
}

// NewParseError creates a FetchError for malformed payloads.
func NewParseError(marketID string, cause error) *FetchError {
	return &FetchError{Type: ErrTypeParse, MarketID: marketID, Cause: cause}
}

// IsNetworkError reports whether err is a network-class fetch failure.
func IsNetworkError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Type == ErrTypeNetwork
}

// IsParseError reports whether err is a parse-class fetch failure.
func IsParseError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Type == ErrTypeParse
}
