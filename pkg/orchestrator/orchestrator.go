// Package orchestrator routes classified utterances to capability
// providers.
//
// Each capability (chat, vision chat, retrieval, speech out, image
// out) holds zero or more configured providers. Zero providers is a
// silent no-op, never an error. Multiple providers fan out
// independently and concurrently: one provider failing is logged and
// never blocks or cancels its siblings. All providers are injected at
// construction; the orchestrator performs no runtime lookup.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/digital-plusplus/GAIA/pkg/camera"
	"github.com/digital-plusplus/GAIA/pkg/chat"
	"github.com/digital-plusplus/GAIA/pkg/intent"
	"github.com/digital-plusplus/GAIA/pkg/search"
	"github.com/digital-plusplus/GAIA/pkg/tti"
	"github.com/digital-plusplus/GAIA/pkg/tts"
)

// Default user-facing utterances.
const (
	// DefaultApology is spoken when a transcript cannot be acted on.
	DefaultApology = "I have no clue what you want from me, I am really sorry!"

	// DefaultVisionApology is spoken when a vision question arrives
	// with no active camera.
	DefaultVisionApology = "I see nothing, can you click the Camera icon to select a camera and then ask me again?"
)

// DefaultMaxResults bounds retrieval fan-in per query.
const DefaultMaxResults = 3

// Config wires the orchestrator's capability providers. Nil or empty
// capabilities are valid and make the matching operations no-ops.
type Config struct {
	// Chat providers answer plain conversation turns. All of them are
	// asked; all of them may answer.
	Chat []chat.Provider

	// Vision providers answer camera-grounded turns.
	Vision []chat.VisionProvider

	// Speech providers synthesize every spoken reply.
	Speech []tts.Provider

	// SpeechSink plays synthesized audio. Required when Speech is
	// non-empty.
	SpeechSink tts.Sink

	// Retrieval supplies web context for search turns. Nil means "no
	// context available", not an error.
	Retrieval search.Provider

	// Image generates pictures from prompts.
	Image tti.Provider

	// Camera selects the active frame source for vision turns.
	Camera *camera.Selector

	// MaxResults bounds retrieval results per query.
	MaxResults int

	// Apology overrides DefaultApology.
	Apology string

	// VisionApology overrides DefaultVisionApology.
	VisionApology string

	// OnReply fires for every chat reply with the answering provider's
	// name. Presentation-layer hook.
	OnReply func(provider, text string)

	// OnImage fires when an image was generated.
	OnImage func(image []byte, mimeType string)

	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Orchestrator dispatches transcripts to capability providers.
type Orchestrator struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an orchestrator over the configured capabilities.
func New(cfg Config) *Orchestrator {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Apology == "" {
		cfg.Apology = DefaultApology
	}
	if cfg.VisionApology == "" {
		cfg.VisionApology = DefaultVisionApology
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Orchestrator{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "orchestrator"),
	}
}

// Dispatch classifies a transcript and routes it to the matching
// capability. This is the single entry point the capture session
// feeds.
func (o *Orchestrator) Dispatch(ctx context.Context, text string) {
	category := intent.Classify(text)
	o.logger.Info("dispatching utterance", "intent", category.String(), "text", text)

	switch category {
	case intent.WebSearch:
		query := intent.TrimQuery(text)
		ragContext, _ := o.Retrieve(ctx, query)
		o.Converse(ctx, text, ragContext)
	case intent.VisionConversation:
		o.ConverseWithVision(ctx, text)
	case intent.ImageRequest:
		o.GenerateImage(ctx, text)
	case intent.CameraSwitch:
		o.NextCamera()
	case intent.Conversation:
		o.Converse(ctx, text, "")
	default:
		o.Say(ctx, o.cfg.Apology)
	}
}

// Say synthesizes text with every configured speech provider and
// plays each result. Best-effort broadcast: a failing provider is
// logged and does not affect the others. Say blocks until every
// provider finished.
func (o *Orchestrator) Say(ctx context.Context, text string) {
	if len(o.cfg.Speech) == 0 || text == "" {
		return
	}

	var wg sync.WaitGroup
	for _, provider := range o.cfg.Speech {
		wg.Add(1)
		go func(p tts.Provider) {
			defer wg.Done()
			result, err := p.Synthesize(ctx, text)
			if err != nil {
				o.logger.Warn("speech synthesis failed", "provider", p.Name(), "error", err)
				return
			}
			if o.cfg.SpeechSink == nil {
				return
			}
			if err := o.cfg.SpeechSink.Play(result); err != nil {
				o.logger.Warn("playback failed", "provider", p.Name(), "error", err)
			}
		}(provider)
	}
	wg.Wait()
}

// Converse asks every configured chat provider the same prompt with
// optional retrieval context. Each reply is spoken and surfaced via
// OnReply; each provider owns its own history append. Converse blocks
// until every provider finished.
func (o *Orchestrator) Converse(ctx context.Context, prompt, ragContext string) {
	var wg sync.WaitGroup
	for _, provider := range o.cfg.Chat {
		wg.Add(1)
		go func(p chat.Provider) {
			defer wg.Done()
			reply, err := p.Chat(ctx, prompt, ragContext)
			if err != nil {
				o.logger.Warn("chat failed", "provider", p.Name(), "error", err)
				return
			}
			o.reply(ctx, p.Name(), reply)
		}(provider)
	}
	wg.Wait()
}

// ConverseWithVision grabs a frame from the active camera and asks
// every configured vision provider. With no active camera (or a frame
// grab failure) it short-circuits to the vision apology instead of
// making a network call.
func (o *Orchestrator) ConverseWithVision(ctx context.Context, prompt string) {
	if len(o.cfg.Vision) == 0 {
		return
	}

	if o.cfg.Camera == nil || o.cfg.Camera.Active() == nil {
		o.Say(ctx, o.cfg.VisionApology)
		return
	}
	frame, err := o.cfg.Camera.CaptureFrame()
	if err != nil {
		o.logger.Warn("frame capture failed", "error", err)
		o.Say(ctx, o.cfg.VisionApology)
		return
	}

	var wg sync.WaitGroup
	for _, provider := range o.cfg.Vision {
		wg.Add(1)
		go func(p chat.VisionProvider) {
			defer wg.Done()
			reply, err := p.ChatWithImage(ctx, prompt, frame)
			if err != nil {
				o.logger.Warn("vision chat failed", "provider", p.Name(), "error", err)
				return
			}
			o.reply(ctx, p.Name(), reply)
		}(provider)
	}
	wg.Wait()
}

// Retrieve fetches web context for a query. With no retrieval
// provider configured it returns ("", false) immediately, making no
// call: the caller treats that as "no context available". A provider
// failure is logged and reported the same way.
func (o *Orchestrator) Retrieve(ctx context.Context, query string) (string, bool) {
	if o.cfg.Retrieval == nil {
		return "", false
	}
	result, err := o.cfg.Retrieval.Search(ctx, query, o.cfg.MaxResults)
	if err != nil {
		o.logger.Warn("retrieval failed", "provider", o.cfg.Retrieval.Name(), "error", err)
		return "", false
	}
	return result, true
}

// GenerateImage renders an image from the prompt and hands it to the
// OnImage hook. No-op when no image provider is configured.
func (o *Orchestrator) GenerateImage(ctx context.Context, prompt string) {
	if o.cfg.Image == nil {
		return
	}
	result, err := o.cfg.Image.Generate(ctx, prompt)
	if err != nil {
		o.logger.Warn("image generation failed", "provider", o.cfg.Image.Name(), "error", err)
		o.Say(ctx, o.cfg.Apology)
		return
	}
	if o.cfg.OnImage != nil {
		o.cfg.OnImage(result.Image, result.MIMEType)
	}
}

// NextCamera rotates to the next frame source (or off). No-op when no
// selector is configured.
func (o *Orchestrator) NextCamera() {
	if o.cfg.Camera == nil {
		return
	}
	name := o.cfg.Camera.Next()
	o.logger.Info("camera switched", "active", name)
}

// CameraOff disables the active frame source. No-op when no selector
// is configured.
func (o *Orchestrator) CameraOff() {
	if o.cfg.Camera == nil {
		return
	}
	o.cfg.Camera.Off()
}

func (o *Orchestrator) reply(ctx context.Context, provider, text string) {
	if o.cfg.OnReply != nil {
		o.cfg.OnReply(provider, text)
	}
	o.Say(ctx, text)
}
