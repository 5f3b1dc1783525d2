// Package stt provides a unified interface for speech-to-text providers.
//
// All backends accept a complete WAV-contained utterance and return one
// transcript. Providers are interchangeable; the capture session only
// sees the Provider interface.
//
// Example usage:
//
//	provider, _ := stt.NewGroq(
//	    stt.WithAPIKey(os.Getenv("GROQ_API_KEY")),
//	    stt.WithModel("whisper-large-v3-turbo"),
//	)
//	transcript, _ := provider.Transcribe(ctx, wavBytes)
package stt

import (
	"context"
	"log/slog"
	"time"
)

// Transcript is the immutable result of one transcription.
type Transcript struct {
	// Text is the recognized speech.
	Text string

	// Language is the detected or requested language code, when the
	// provider reports one.
	Language string
}

// Provider defines the speech-to-text provider interface.
type Provider interface {
	// Transcribe converts one WAV-contained utterance to text.
	// The audio is consumed exactly once; callers discard it after
	// Transcribe returns, success or failure.
	Transcribe(ctx context.Context, wavData []byte) (*Transcript, error)

	// Name returns the backend name (e.g. "groq", "elevenlabs", "mock").
	Name() string
}

// Config holds provider configuration.
type Config struct {
	// APIKey authenticates with the provider.
	APIKey string

	// Model is the transcription model identifier.
	Model string

	// Language hints the spoken language (e.g. "en", "nl").
	Language string

	// BaseURL overrides the default API endpoint.
	BaseURL string

	// Timeout bounds one transcription request.
	Timeout time.Duration

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Language: "en",
		Timeout:  30 * time.Second,
		Logger:   slog.Default(),
	}
}

// Option is a functional option for configuring providers.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the transcription model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithLanguage sets the spoken language hint.
func WithLanguage(lang string) Option {
	return func(c *Config) { c.Language = lang }
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
