// Package chat provides a unified interface for conversational LLM
// providers.
//
// Each provider owns its conversation history: a successful Chat call
// appends the user prompt (with any retrieval context folded in) and
// the model's reply; a failed call leaves history untouched. Vision
// providers additionally accept one inline JPEG per call, and the image
// never survives its round trip in history.
//
// Example usage:
//
//	provider, _ := chat.NewGemini(
//	    chat.WithAPIKey(os.Getenv("GOOGLE_API_KEY")),
//	    chat.WithPreamble(preamble),
//	)
//	reply, _ := provider.Chat(ctx, "hello", "")
package chat

import (
	"context"
	"log/slog"
	"time"
)

// Provider is the interface for chat backends.
type Provider interface {
	// Chat sends the prompt, with optional retrieval context, and
	// returns the model's reply. The provider appends both sides of
	// the exchange to its own history.
	Chat(ctx context.Context, prompt, ragContext string) (string, error)

	// Name returns the backend name (e.g. "gemini", "openai", "mock").
	Name() string
}

// VisionProvider is a chat backend that also accepts one inline image.
type VisionProvider interface {
	Provider

	// ChatWithImage sends the prompt together with a JPEG frame.
	// On success the prompt and image are dropped from history and
	// only the reply is retained, so the image is never resent.
	ChatWithImage(ctx context.Context, prompt string, jpeg []byte) (string, error)
}

// Config holds provider configuration.
type Config struct {
	// APIKey authenticates with the provider.
	APIKey string

	// Model is the chat model identifier.
	Model string

	// BaseURL overrides the default API endpoint.
	BaseURL string

	// Preamble is the session system instruction, prepended to every
	// outbound request and never stored in history.
	Preamble string

	// ClosedContext instructs the model to refuse when an answer is
	// not contained in supplied retrieval context.
	ClosedContext bool

	// Temperature controls response randomness.
	Temperature float64

	// MaxTokens limits response length.
	MaxTokens int

	// Timeout bounds one request.
	Timeout time.Duration

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Temperature: 0.7,
		MaxTokens:   1024,
		Timeout:     30 * time.Second,
		Logger:      slog.Default(),
	}
}

// Option is a functional option for configuring providers.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithPreamble sets the session system instruction.
func WithPreamble(p string) Option {
	return func(c *Config) { c.Preamble = p }
}

// WithClosedContext restricts answers to supplied retrieval context.
func WithClosedContext() Option {
	return func(c *Config) { c.ClosedContext = true }
}

// WithTemperature sets the response temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithMaxTokens sets the maximum response tokens.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
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
