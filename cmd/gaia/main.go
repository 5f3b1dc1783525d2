// gaia: voice-driven conversational assistant.
// Captures push-to-talk utterances, transcribes them, classifies the
// intent and routes it to the configured cloud providers. Providers
// are wired from environment credentials: a missing key simply leaves
// that capability unconfigured.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/digital-plusplus/GAIA/internal/config"
	"github.com/digital-plusplus/GAIA/internal/log"
	"github.com/digital-plusplus/GAIA/pkg/camera"
	"github.com/digital-plusplus/GAIA/pkg/capture"
	"github.com/digital-plusplus/GAIA/pkg/chat"
	"github.com/digital-plusplus/GAIA/pkg/history"
	"github.com/digital-plusplus/GAIA/pkg/orchestrator"
	"github.com/digital-plusplus/GAIA/pkg/search"
	"github.com/digital-plusplus/GAIA/pkg/stt"
	"github.com/digital-plusplus/GAIA/pkg/tti"
	"github.com/digital-plusplus/GAIA/pkg/tts"
	"github.com/digital-plusplus/GAIA/pkg/web"
)

var (
	port     = flag.Int("port", 8080, "control surface port")
	logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	identity = flag.String("identity", "GAIA, a helpful voice assistant.", "assistant identity for the system preamble")
	maxWords = flag.Int("max-words", 60, "response length cap in words (0 = unconstrained)")
)

func main() {
	flag.Parse()

	// Credentials come from the environment; .env is a convenience for
	// development and its absence is not an error.
	godotenv.Load()
	log.Init(config.Getenv("GAIA_LOG_LEVEL", *logLevel))
	logger := log.With("component", "main")

	preamble := history.BuildPreamble(history.PreambleConfig{
		Identity: *identity,
		MaxWords: *maxWords,
		Date:     time.Now(),
	})

	// Chat and vision providers.
	var chatProviders []chat.Provider
	var visionProviders []chat.VisionProvider
	if key := config.APIKey(config.EnvGoogleAPIKey); key != "" {
		gemini, err := chat.NewGemini(
			chat.WithAPIKey(key),
			chat.WithPreamble(preamble),
		)
		if err != nil {
			logger.Error("gemini init failed", "error", err)
			os.Exit(1)
		}
		chatProviders = append(chatProviders, gemini)
		visionProviders = append(visionProviders, gemini)
	}
	if key := config.APIKey(config.EnvGroqAPIKey); key != "" && config.GetenvBool("GAIA_GROQ_CHAT") {
		groq, err := chat.NewOpenAI(
			chat.WithAPIKey(key),
			chat.WithBaseURL(chat.GroqBaseURL),
			chat.WithPreamble(preamble),
		)
		if err != nil {
			logger.Error("groq chat init failed", "error", err)
			os.Exit(1)
		}
		chatProviders = append(chatProviders, groq)
	}

	// Retrieval.
	var retrieval search.Provider
	apiKey := config.APIKey(config.EnvGoogleAPIKey)
	engineID := config.APIKey(config.EnvGoogleSearchID)
	if apiKey != "" && engineID != "" {
		google, err := search.NewGoogle(context.Background(), apiKey, engineID,
			search.WithPageContent())
		if err != nil {
			logger.Error("google search init failed", "error", err)
			os.Exit(1)
		}
		retrieval = google
	}

	// Speech out.
	var speechProviders []tts.Provider
	if key := config.APIKey(config.EnvElevenLabsAPIKey); key != "" {
		if voice := config.Getenv("ELEVENLABS_VOICE_ID", ""); voice != "" {
			eleven, err := tts.NewElevenLabs(tts.WithAPIKey(key), tts.WithVoice(voice))
			if err != nil {
				logger.Error("elevenlabs init failed", "error", err)
				os.Exit(1)
			}
			speechProviders = append(speechProviders, eleven)
		} else {
			logger.Warn("ELEVENLABS_VOICE_ID unset, skipping elevenlabs")
		}
	}
	if key := config.APIKey(config.EnvSpeechifyAPIKey); key != "" {
		speechify, err := tts.NewSpeechify(tts.WithAPIKey(key))
		if err != nil {
			logger.Error("speechify init failed", "error", err)
			os.Exit(1)
		}
		speechProviders = append(speechProviders, speechify)
	}

	// Image out.
	var imageProvider tti.Provider
	if key := config.APIKey(config.EnvHuggingFaceToken); key != "" {
		hf, err := tti.NewHuggingFace(tti.WithAPIKey(key))
		if err != nil {
			logger.Error("huggingface init failed", "error", err)
			os.Exit(1)
		}
		imageProvider = hf
	}

	// Frame sources are platform collaborators; the selector starts
	// empty and vision questions apologize until one is registered.
	selector := camera.NewSelector()

	// Speech in.
	var transcriber stt.Provider
	if key := config.APIKey(config.EnvGroqAPIKey); key != "" {
		groq, err := stt.NewGroq(stt.WithAPIKey(key))
		if err != nil {
			logger.Error("groq stt init failed", "error", err)
			os.Exit(1)
		}
		transcriber = groq
	} else if key := config.APIKey(config.EnvElevenLabsAPIKey); key != "" {
		eleven, err := stt.NewElevenLabs(stt.WithAPIKey(key))
		if err != nil {
			logger.Error("elevenlabs stt init failed", "error", err)
			os.Exit(1)
		}
		transcriber = eleven
	}
	if transcriber == nil {
		logger.Error("no transcription provider configured",
			"hint", "set GROQ_API_KEY or ELEVENLABS_API_KEY")
		os.Exit(1)
	}

	// The reply hooks fire only once the pipeline is running, well
	// after the server below exists.
	var server *web.Server
	orch := orchestrator.New(orchestrator.Config{
		Chat:       chatProviders,
		Vision:     visionProviders,
		Speech:     speechProviders,
		SpeechSink: tts.NewPlayerSink(config.Getenv("GAIA_PLAYER", "")),
		Retrieval:  retrieval,
		Image:      imageProvider,
		Camera:     selector,
		OnReply: func(provider, text string) {
			server.AddTurn("assistant", text)
			server.UpdateState(func(s *web.State) { s.LastReply = text })
		},
		OnImage: func(image []byte, mimeType string) {
			server.SendImage(image)
		},
	})

	device, err := capture.NewPortAudioDevice()
	if err != nil {
		logger.Error("audio device init failed", "error", err)
		os.Exit(1)
	}
	session := capture.NewSession(device, transcriber,
		capture.WithMaxSeconds(config.GetenvInt("GAIA_MAX_SECONDS", capture.DefaultMaxSeconds)))

	server = web.NewServer(fmt.Sprintf(":%d", *port), &controls{session: session, orch: orch})

	// Pipeline plumbing: transcript in, replies and images out.
	session.OnTranscript = func(t *stt.Transcript) {
		server.AddTurn("user", t.Text)
		server.UpdateState(func(s *web.State) { s.LastTranscript = t.Text })
		orch.Dispatch(context.Background(), t.Text)
	}
	session.OnListening = func(active bool) {
		server.UpdateState(func(s *web.State) {
			s.Listening = active
			s.Session = session.State().String()
		})
	}
	session.OnError = func(err error) {
		logger.Warn("utterance failed", "error", err)
	}
	selector.OnChange = func(name string) {
		server.UpdateState(func(s *web.State) { s.ActiveCamera = name })
	}

	server.StartAsync()

	if err := session.InitializeMicrophone(); err != nil {
		// Not fatal: the next press retries the permission prompt.
		logger.Warn("microphone not ready", "error", err)
	}

	logger.Info("gaia ready",
		"chat", len(chatProviders),
		"speech", len(speechProviders),
		"retrieval", retrieval != nil,
		"image", imageProvider != nil)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	server.Shutdown()
	device.Terminate()
}

// controls adapts the capture session and orchestrator to the web
// control surface.
type controls struct {
	session *capture.Session
	orch    *orchestrator.Orchestrator
}

func (c *controls) PressStart() error  { return c.session.PressStart() }
func (c *controls) ReleaseStop() error { return c.session.ReleaseStop() }
func (c *controls) NextCamera()        { c.orch.NextCamera() }
func (c *controls) CameraOff()         { c.orch.CameraOff() }
