package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/digital-plusplus/GAIA/internal/httpc"
)

const (
	elevenLabsBaseURL  = "https://api.elevenlabs.io/v1"
	providerElevenLabs = "elevenlabs"
)

// ElevenLabs model identifiers.
const (
	// ModelTurboV2_5 is the fastest English model (~200ms latency).
	ModelTurboV2_5 = "eleven_turbo_v2_5"

	// ModelFlashV2_5 is the fastest multilingual model (~150ms latency).
	ModelFlashV2_5 = "eleven_flash_v2_5"

	// ModelMultilingualV2 is the highest quality multilingual model.
	ModelMultilingualV2 = "eleven_multilingual_v2"
)

// ElevenLabs implements Provider for ElevenLabs TTS.
type ElevenLabs struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewElevenLabs creates a new ElevenLabs TTS provider.
func NewElevenLabs(opts ...Option) (*ElevenLabs, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = elevenLabsBaseURL
	cfg.Model = ModelTurboV2_5
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerElevenLabs, ErrNoAPIKey)
	}
	if cfg.VoiceID == "" {
		return nil, WrapError(providerElevenLabs, ErrNoVoice)
	}

	return &ElevenLabs{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "tts.elevenlabs"),
	}, nil
}

// Name returns the backend name.
func (e *ElevenLabs) Name() string { return providerElevenLabs }

// Synthesize converts text to audio, returning the complete MP3 buffer.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	if text == "" {
		return nil, WrapError(providerElevenLabs, ErrEmptyText)
	}

	start := time.Now()

	payload := map[string]any{
		"text":     text,
		"model_id": e.config.Model,
		"voice_settings": map[string]any{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}

	url := e.config.BaseURL + "/text-to-speech/" + e.config.VoiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}
	req.Header.Set("xi-api-key", e.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(msg), Provider: providerElevenLabs}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}

	e.logger.Debug("synthesis complete", "chars", len(text), "bytes", len(audio))

	return &AudioResult{
		Audio:     audio,
		Format:    AudioFormat{Encoding: "mp3_44100_128", SampleRate: 44100, Channels: 1},
		CharCount: len(text),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Verify ElevenLabs implements Provider at compile time.
var _ Provider = (*ElevenLabs)(nil)
