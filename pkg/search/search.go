// Package search retrieves web context for the conversation pipeline.
//
// Results are rendered as delimiter-framed blocks that slot directly
// into the prompt context template of pkg/history. A session without a
// retrieval provider is valid: the orchestrator treats the absent
// provider as "no context available", never as an error.
package search

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the interface for retrieval backends.
type Provider interface {
	// Search returns concatenated snippet blocks for the topN best
	// results, or an error when the backend is unreachable.
	Search(ctx context.Context, query string, topN int) (string, error)

	// Name returns the backend name (e.g. "google", "mock").
	Name() string
}

// Sentinel errors for the search package.
var (
	// ErrNoAPIKey is returned when credentials are missing.
	ErrNoAPIKey = errors.New("search: API key and search engine ID required")

	// ErrNoResults is returned when the query matched nothing.
	ErrNoResults = errors.New("search: no results")
)

// APIError represents an error response from a search API.
type APIError struct {
	StatusCode int
	Message    string
	Provider   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("search [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}
