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
	groqBaseURL  = "https://api.groq.com/openai/v1/audio/transcriptions"
	providerGroq = "groq"
)

// Groq model identifiers for the OpenAI-compatible whisper endpoint.
const (
	ModelWhisperLargeV3      = "whisper-large-v3"
	ModelWhisperLargeV3Turbo = "whisper-large-v3-turbo"
	ModelDistilWhisperEN     = "distil-whisper-large-v3-en"
)

// Groq implements Provider for Groq's OpenAI-compatible whisper API.
// The endpoint takes a multipart form, not JSON.
type Groq struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewGroq creates a Groq transcription provider.
func NewGroq(opts ...Option) (*Groq, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = groqBaseURL
	cfg.Model = ModelWhisperLargeV3Turbo
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerGroq, ErrNoAPIKey)
	}

	return &Groq{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "stt.groq"),
	}, nil
}

// Name returns the backend name.
func (g *Groq) Name() string { return providerGroq }

// Transcribe submits the WAV utterance and returns the transcript.
func (g *Groq) Transcribe(ctx context.Context, wavData []byte) (*Transcript, error) {
	if len(wavData) == 0 {
		return nil, WrapError(providerGroq, ErrEmptyAudio)
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	if err := form.WriteField("model", g.config.Model); err != nil {
		return nil, WrapError(providerGroq, err)
	}
	if err := form.WriteField("language", g.config.Language); err != nil {
		return nil, WrapError(providerGroq, err)
	}
	part, err := form.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, WrapError(providerGroq, err)
	}
	if _, err := part.Write(wavData); err != nil {
		return nil, WrapError(providerGroq, err)
	}
	if err := form.Close(); err != nil {
		return nil, WrapError(providerGroq, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL, body)
	if err != nil {
		return nil, WrapError(providerGroq, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, WrapError(providerGroq, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(msg), Provider: providerGroq}
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, WrapError(providerGroq, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	g.logger.Debug("transcription complete", "chars", len(result.Text))

	return &Transcript{Text: result.Text, Language: g.config.Language}, nil
}

// Verify Groq implements Provider at compile time.
var _ Provider = (*Groq)(nil)
