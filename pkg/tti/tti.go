// Package tti provides a unified interface for text-to-image providers.
//
// Image generation is the slowest capability in the pipeline, so every
// Provider takes a context and callers are expected to set generous
// deadlines. Results are raw encoded image bytes (JPEG or PNG depending
// on the backend) ready to hand to a display surface.
package tti

import (
	"context"
	"log/slog"
	"time"
)

// Provider defines the text-to-image provider interface.
type Provider interface {
	// Generate renders an image from the prompt, returning the encoded
	// image bytes.
	Generate(ctx context.Context, prompt string) (*ImageResult, error)

	// Name returns the backend name (e.g. "huggingface").
	Name() string
}

// ImageResult represents a completed image generation.
type ImageResult struct {
	// Image contains the encoded image bytes.
	Image []byte

	// MIMEType describes the encoding (e.g. "image/jpeg").
	MIMEType string

	// LatencyMs is the generation round-trip time in milliseconds.
	LatencyMs int64
}

// Config holds provider configuration.
type Config struct {
	// APIKey authenticates with the provider.
	APIKey string

	// Model is the diffusion model identifier.
	Model string

	// BaseURL overrides the default API endpoint.
	BaseURL string

	// Timeout bounds one generation request. Diffusion models are
	// slow; this default is deliberately long.
	Timeout time.Duration

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 120 * time.Second,
		Logger:  slog.Default(),
	}
}

// Option is a functional option for configuring providers.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the diffusion model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
