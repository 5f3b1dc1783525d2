// Package tts provides a unified interface for text-to-speech providers.
//
// The package supports multiple speech backends including ElevenLabs
// (custom voice cloning) and Speechify (simba models). All providers
// implement the Provider interface, enabling seamless switching without
// changing caller code. Playback is a separate Sink collaborator: the
// orchestrator synthesizes with every configured provider and hands
// each result to the sink.
//
// Example usage:
//
//	provider, _ := tts.NewElevenLabs(
//	    tts.WithAPIKey(os.Getenv("ELEVENLABS_API_KEY")),
//	    tts.WithVoice("your-voice-id"),
//	)
//
//	result, _ := provider.Synthesize(ctx, "Hello world")
//	// result.Audio contains MP3/PCM audio bytes
package tts

import (
	"context"
	"log/slog"
	"time"
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio
	// buffer.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Name returns the backend name (e.g. "elevenlabs", "speechify").
	Name() string
}

// Sink plays synthesized audio. Implementations are presentation
// collaborators (speaker, file, test recorder).
type Sink interface {
	Play(result *AudioResult) error
}

// AudioResult represents a complete audio synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the specified format.
	Audio []byte

	// Format describes the audio encoding and sample rate.
	Format AudioFormat

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the synthesis round-trip time in milliseconds.
	LatencyMs int64
}

// AudioFormat describes the audio encoding parameters.
type AudioFormat struct {
	// Encoding specifies the audio codec (e.g. mp3_44100_128, pcm_24000).
	Encoding string

	// SampleRate in Hz.
	SampleRate int

	// Channels is 1 for mono, 2 for stereo.
	Channels int
}

// Config holds provider configuration.
type Config struct {
	// APIKey authenticates with the provider.
	APIKey string

	// VoiceID selects the synthesis voice.
	VoiceID string

	// Model is the synthesis model identifier.
	Model string

	// BaseURL overrides the default API endpoint.
	BaseURL string

	// Timeout bounds one synthesis request.
	Timeout time.Duration

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Logger:  slog.Default(),
	}
}

// Option is a functional option for configuring providers.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithVoice sets the synthesis voice.
func WithVoice(id string) Option {
	return func(c *Config) { c.VoiceID = id }
}

// WithModel sets the synthesis model.
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
