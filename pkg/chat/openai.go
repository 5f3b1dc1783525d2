package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/digital-plusplus/GAIA/internal/httpc"
	"github.com/digital-plusplus/GAIA/pkg/history"
)

const providerOpenAI = "openai"

// Known OpenAI-compatible endpoints.
const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OllamaBaseURL = "http://localhost:11434/v1"
)

// OpenAI implements Provider for any OpenAI-compatible chat completions
// API: Groq, Ollama, vLLM and friends all speak this dialect. Point
// BaseURL at the deployment and pick a model it serves.
type OpenAI struct {
	config  *Config
	client  *http.Client
	logger  *slog.Logger
	history *history.History
}

// NewOpenAI creates an OpenAI-compatible chat provider with an empty
// history. The API key may be empty for local deployments.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = GroqBaseURL
	cfg.Model = "llama-3.3-70b-versatile"
	cfg.Apply(opts...)

	return &OpenAI{
		config:  cfg,
		client:  httpc.NewClient(cfg.Timeout),
		logger:  cfg.Logger.With("component", "chat.openai"),
		history: history.New(),
	}, nil
}

// Name returns the backend name.
func (o *OpenAI) Name() string { return providerOpenAI }

// History exposes the provider's conversation history.
func (o *OpenAI) History() *history.History { return o.history }

// Chat sends the prompt with optional retrieval context.
func (o *OpenAI) Chat(ctx context.Context, prompt, ragContext string) (string, error) {
	promptWithContext := prompt + history.FormatContext(ragContext, o.config.ClosedContext)
	o.history.Append(history.RoleUser, promptWithContext)

	reply, err := o.generate(ctx)
	if err != nil {
		o.history.Pop()
		return "", err
	}

	o.history.Append(history.RoleModel, reply)
	return reply, nil
}

func (o *OpenAI) generate(ctx context.Context) (string, error) {
	messages := []oaiMessage{{Role: "system", Content: o.config.Preamble}}
	for _, turn := range o.history.Turns() {
		role := "user"
		if turn.Role == history.RoleModel {
			role = "assistant"
		}
		messages = append(messages, oaiMessage{Role: role, Content: turn.Text})
	}

	payload := oaiRequest{
		Model:       o.config.Model,
		Messages:    messages,
		Temperature: o.config.Temperature,
		MaxTokens:   o.config.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", WrapError(providerOpenAI, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", WrapError(providerOpenAI, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.config.APIKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", WrapError(providerOpenAI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &APIError{StatusCode: resp.StatusCode, Message: string(msg), Provider: providerOpenAI}
	}

	var result oaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", WrapError(providerOpenAI, fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	if len(result.Choices) == 0 {
		return "", WrapError(providerOpenAI, ErrEmptyReply)
	}

	reply := result.Choices[0].Message.Content
	o.logger.Debug("chat complete", "model", o.config.Model, "chars", len(reply))
	return reply, nil
}

// Wire types for the OpenAI-compatible API.

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiRequest struct {
	Model       string       `json:"model"`
	Messages    []oaiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
}

type oaiResponse struct {
	Choices []struct {
		Message oaiMessage `json:"message"`
	} `json:"choices"`
}

// Verify OpenAI implements Provider at compile time.
var _ Provider = (*OpenAI)(nil)
