package tti

import (
	"errors"
	"fmt"
)

// Sentinel errors for the tti package.
var (
	// ErrNoAPIKey is returned when the API key is required but missing.
	ErrNoAPIKey = errors.New("tti: API key required")

	// ErrEmptyPrompt is returned when there is nothing to render.
	ErrEmptyPrompt = errors.New("tti: empty prompt")

	// ErrModelLoading is returned when the backend is still warming up
	// the model. The request may succeed on retry.
	ErrModelLoading = errors.New("tti: model loading")
)

// APIError represents an error response from a generation API.
type APIError struct {
	StatusCode int
	Message    string
	Provider   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("tti [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// ProviderError wraps an error with provider context.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("tti [%s]: %v", e.Provider, e.Err)
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
