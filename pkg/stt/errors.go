package stt

import (
	"errors"
	"fmt"
)

// Sentinel errors for the stt package.
var (
	// ErrNoAPIKey is returned when the API key is required but missing.
	ErrNoAPIKey = errors.New("stt: API key required")

	// ErrEmptyAudio is returned when an empty utterance is submitted.
	ErrEmptyAudio = errors.New("stt: empty audio")

	// ErrMalformedResponse is returned when the provider answered with
	// a shape the client cannot parse. Treated like a provider failure:
	// terminal for the current utterance, never retried here.
	ErrMalformedResponse = errors.New("stt: malformed provider response")
)

// APIError represents an error response from a transcription API.
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
	return fmt.Sprintf("stt [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// ProviderError wraps an error with provider context.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("stt [%s]: %v", e.Provider, e.Err)
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
