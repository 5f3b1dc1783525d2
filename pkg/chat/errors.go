package chat

import (
	"errors"
	"fmt"
)

// Sentinel errors for the chat package.
var (
	// ErrNoAPIKey is returned when the API key is required but missing.
	ErrNoAPIKey = errors.New("chat: API key required")

	// ErrEmptyReply is returned when the provider answered without any
	// usable content.
	ErrEmptyReply = errors.New("chat: empty reply")

	// ErrMalformedResponse is returned when the provider answered with
	// a shape the client cannot parse.
	ErrMalformedResponse = errors.New("chat: malformed provider response")
)

// APIError represents an error response from a chat API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Provider identifies which backend returned the error.
	Provider string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("chat [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// ProviderError wraps an error with provider context.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("chat [%s]: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with provider context.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}
