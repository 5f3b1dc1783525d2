package tti

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
	huggingFaceBaseURL  = "https://api-inference.huggingface.co/models"
	providerHuggingFace = "huggingface"
)

// Hugging Face diffusion model identifiers.
const (
	// ModelSDXLBase is Stable Diffusion XL, a good quality/latency
	// tradeoff on the free inference tier.
	ModelSDXLBase = "stabilityai/stable-diffusion-xl-base-1.0"

	// ModelFluxSchnell is a faster distilled model.
	ModelFluxSchnell = "black-forest-labs/FLUX.1-schnell"
)

// HuggingFace implements Provider using the Hugging Face inference API.
// The API returns raw image bytes on success and a JSON error envelope
// on failure.
type HuggingFace struct {
	config *Config
	client *http.Client
	logger *slog.Logger
}

// NewHuggingFace creates a new Hugging Face text-to-image provider.
func NewHuggingFace(opts ...Option) (*HuggingFace, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = huggingFaceBaseURL
	cfg.Model = ModelSDXLBase
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerHuggingFace, ErrNoAPIKey)
	}

	return &HuggingFace{
		config: cfg,
		client: httpc.NewClient(cfg.Timeout),
		logger: cfg.Logger.With("component", "tti.huggingface"),
	}, nil
}

// Name returns the backend name.
func (h *HuggingFace) Name() string { return providerHuggingFace }

// Generate renders an image from the prompt.
func (h *HuggingFace) Generate(ctx context.Context, prompt string) (*ImageResult, error) {
	if prompt == "" {
		return nil, WrapError(providerHuggingFace, ErrEmptyPrompt)
	}

	start := time.Now()

	body, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return nil, WrapError(providerHuggingFace, err)
	}

	url := h.config.BaseURL + "/" + h.config.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(providerHuggingFace, err)
	}
	req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, WrapError(providerHuggingFace, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		// The inference tier cold-starts models; 503 means try again.
		return nil, WrapError(providerHuggingFace, ErrModelLoading)
	case resp.StatusCode != http.StatusOK:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(msg), Provider: providerHuggingFace}
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(providerHuggingFace, err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/jpeg"
	}

	h.logger.Debug("generation complete", "model", h.config.Model,
		"bytes", len(image), "latency_ms", time.Since(start).Milliseconds())

	return &ImageResult{
		Image:     image,
		MIMEType:  mime,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Verify HuggingFace implements Provider at compile time.
var _ Provider = (*HuggingFace)(nil)
