package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/digital-plusplus/GAIA/internal/httpc"
)

const (
	elevenLabsBaseURL  = "https://api.elevenlabs.io/v1/speech-to-text"
	providerElevenLabs = "elevenlabs"
)

// ModelScribeV1 is the only ElevenLabs transcription model.
const ModelScribeV1 = "scribe_v1"

// ElevenLabs implements Provider for the ElevenLabs scribe API.
type ElevenLabs struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewElevenLabs creates an ElevenLabs transcription provider.
func NewElevenLabs(opts ...Option) (*ElevenLabs, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = elevenLabsBaseURL
	cfg.Model = ModelScribeV1
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerElevenLabs, ErrNoAPIKey)
	}

	return &ElevenLabs{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "stt.elevenlabs"),
	}, nil
}

// Name returns the backend name.
func (e *ElevenLabs) Name() string { return providerElevenLabs }

// Transcribe submits the WAV utterance and returns the transcript.
func (e *ElevenLabs) Transcribe(ctx context.Context, wavData []byte) (*Transcript, error) {
	if len(wavData) == 0 {
		return nil, WrapError(providerElevenLabs, ErrEmptyAudio)
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	if err := form.WriteField("model_id", e.config.Model); err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}
	part, err := form.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}
	if _, err := part.Write(wavData); err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}
	if err := form.Close(); err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL, body)
	if err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}
	req.Header.Set("xi-api-key", e.config.APIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, WrapError(providerElevenLabs, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(msg), Provider: providerElevenLabs}
	}

	var result struct {
		Text         string `json:"text"`
		LanguageCode string `json:"language_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, WrapError(providerElevenLabs, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	lang := result.LanguageCode
	if lang == "" {
		lang = e.config.Language
	}

	e.logger.Debug("transcription complete", "chars", len(result.Text), "language", lang)

	return &Transcript{Text: result.Text, Language: lang}, nil
}

// Verify ElevenLabs implements Provider at compile time.
var _ Provider = (*ElevenLabs)(nil)
