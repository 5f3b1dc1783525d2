package chat

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/digital-plusplus/GAIA/internal/httpc"
	"github.com/digital-plusplus/GAIA/pkg/history"
)

const (
	geminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta/models"
	providerGemini = "gemini"
)

// Gemini model identifiers.
const (
	ModelGeminiFlash     = "gemini-2.0-flash"
	ModelGeminiFlashLite = "gemini-2.0-flash-lite"
)

// Gemini implements VisionProvider for Google's Gemini API.
// Gemini has no system message; the preamble travels as a
// system_instruction content preceding the regular contents array.
type Gemini struct {
	config  *Config
	client  *http.Client
	logger  *slog.Logger
	history *history.History
}

// NewGemini creates a Gemini chat provider with an empty history.
func NewGemini(opts ...Option) (*Gemini, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = geminiBaseURL
	cfg.Model = ModelGeminiFlash
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, WrapError(providerGemini, ErrNoAPIKey)
	}

	return &Gemini{
		config:  cfg,
		client:  httpc.NewClient(cfg.Timeout),
		logger:  cfg.Logger.With("component", "chat.gemini"),
		history: history.New(),
	}, nil
}

// Name returns the backend name.
func (g *Gemini) Name() string { return providerGemini }

// History exposes the provider's conversation history.
func (g *Gemini) History() *history.History { return g.history }

// Chat sends the prompt with optional retrieval context.
// Context is folded into the stored user turn, so it rides along in
// future history without ever being re-fetched.
func (g *Gemini) Chat(ctx context.Context, prompt, ragContext string) (string, error) {
	promptWithContext := prompt + history.FormatContext(ragContext, g.config.ClosedContext)
	g.history.Append(history.RoleUser, promptWithContext)

	reply, err := g.generate(ctx)
	if err != nil {
		g.history.Pop()
		return "", err
	}

	g.history.Append(history.RoleModel, reply)
	return reply, nil
}

// ChatWithImage sends the prompt with one inline JPEG frame.
// The pending vision turn is finalized on success: prompt and image are
// dropped and only the reply is retained in history.
func (g *Gemini) ChatWithImage(ctx context.Context, prompt string, jpeg []byte) (string, error) {
	g.history.AppendImage(prompt, jpeg)

	reply, err := g.generate(ctx)
	if err != nil {
		g.history.Pop()
		return "", err
	}

	g.history.FinalizeVisionTurn(reply)
	return reply, nil
}

// generate fires one generateContent call over the current history.
func (g *Gemini) generate(ctx context.Context) (string, error) {
	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Role:  "model",
			Parts: []geminiPart{{Text: g.config.Preamble}},
		},
		Contents: g.convertHistory(),
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     g.config.Temperature,
			MaxOutputTokens: g.config.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", WrapError(providerGemini, err)
	}

	// Gemini takes the API key as a query parameter, not a header.
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.config.BaseURL, g.config.Model, g.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", WrapError(providerGemini, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", WrapError(providerGemini, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &APIError{StatusCode: resp.StatusCode, Message: string(msg), Provider: providerGemini}
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", WrapError(providerGemini, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	if result.Error.Message != "" {
		return "", &APIError{StatusCode: resp.StatusCode, Message: result.Error.Message, Provider: providerGemini}
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", WrapError(providerGemini, ErrEmptyReply)
	}

	reply := result.Candidates[0].Content.Parts[0].Text
	g.logger.Debug("chat complete", "model", g.config.Model, "chars", len(reply))
	return reply, nil
}

// convertHistory maps stored turns to wire contents. Text and image
// travel as separate parts; empty fields are omitted entirely, which
// the API requires.
func (g *Gemini) convertHistory() []geminiContent {
	turns := g.history.Turns()
	contents := make([]geminiContent, 0, len(turns))
	for _, turn := range turns {
		parts := []geminiPart{{Text: turn.Text}}
		if turn.Image != nil {
			parts = append(parts, geminiPart{
				InlineData: &geminiInlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(turn.Image),
				},
			})
		}
		contents = append(contents, geminiContent{Role: string(turn.Role), Parts: parts})
	}
	return contents
}

// Wire types for the Gemini API.

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Verify Gemini implements VisionProvider at compile time.
var _ VisionProvider = (*Gemini)(nil)
