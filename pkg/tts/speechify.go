package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/digital-plusplus/GAIA/internal/httpc"
)

const (
	speechifyBaseURL  = "https://api.sws.speechify.com/v1"
	providerSpeechify = "speechify"
)

// Speechify model identifiers.
const (
	ModelSimbaEnglish      = "simba-english"
	ModelSimbaMultilingual = "simba-multilingual"
)

// Speechify implements Provider for Speechify's simba TTS API.
// The API returns base64-encoded audio inside a JSON envelope rather
// than raw bytes.
type Speechify struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewSpeechify creates a new Speechify TTS provider.
func NewSpeechify(opts ...Option) (*Speechify, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = speechifyBaseURL
	cfg.Model = ModelSimbaEnglish
	cfg.VoiceID = "george"
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerSpeechify, ErrNoAPIKey)
	}

	return &Speechify{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "tts.speechify"),
	}, nil
}

// Name returns the backend name.
func (s *Speechify) Name() string { return providerSpeechify }

// Synthesize converts text to audio, returning the complete MP3 buffer.
func (s *Speechify) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	if text == "" {
		return nil, WrapError(providerSpeechify, ErrEmptyText)
	}

	start := time.Now()

	payload := map[string]any{
		"input":        text,
		"voice_id":     s.config.VoiceID,
		"model":        s.config.Model,
		"audio_format": "mp3",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(providerSpeechify, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.BaseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(providerSpeechify, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, WrapError(providerSpeechify, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(msg), Provider: providerSpeechify}
	}

	var result struct {
		AudioData string `json:"audio_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, WrapError(providerSpeechify, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioData)
	if err != nil {
		return nil, WrapError(providerSpeechify, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	s.logger.Debug("synthesis complete", "chars", len(text), "bytes", len(audio))

	return &AudioResult{
		Audio:     audio,
		Format:    AudioFormat{Encoding: "mp3_44100_128", SampleRate: 44100, Channels: 1},
		CharCount: len(text),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Verify Speechify implements Provider at compile time.
var _ Provider = (*Speechify)(nil)
