package tts

import (
	"errors"
	"fmt"
)

// Sentinel errors for the tts package.
var (
	// ErrNoAPIKey is returned when the API key is required but missing.
	ErrNoAPIKey = errors.New("tts: API key required")

	// ErrNoVoice is returned when a voice ID is required but missing.
	ErrNoVoice = errors.New("tts: voice ID required")

	// ErrEmptyText is returned when there is nothing to synthesize.
	ErrEmptyText = errors.New("tts: empty text")

	// ErrMalformedResponse is returned when the provider answered with
	// a shape the client cannot parse.
	ErrMalformedResponse = errors.New("tts: malformed provider response")
)

// APIError represents an error response from a synthesis API.
type APIError struct {
	StatusCode int
	Message    string
	Provider   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("tts [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// ProviderError wraps an error with provider context.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("tts [%s]: %v", e.Provider, e.Err)
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
