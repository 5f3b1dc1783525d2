// Package web exposes the conversational pipeline's control surface:
// press/release endpoints mirroring the push-to-talk button, state for
// the listening indicator, and websocket streams for conversation
// turns and generated images.
package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/digital-plusplus/GAIA/pkg/hub"
)

// Controls is the slice of the pipeline the web surface drives.
type Controls interface {
	// PressStart begins capturing an utterance.
	PressStart() error

	// ReleaseStop ends the capture and triggers transcription.
	ReleaseStop() error

	// NextCamera rotates the active frame source.
	NextCamera()

	// CameraOff disables the active frame source.
	CameraOff()
}

// State is the pipeline state snapshot served to clients.
type State struct {
	Session        string `json:"session"`
	Listening      bool   `json:"listening"`
	ActiveCamera   string `json:"active_camera"`
	LastTranscript string `json:"last_transcript"`
	LastReply      string `json:"last_reply"`
}

// TurnEntry is one conversation message for the dashboard.
type TurnEntry struct {
	Time    string `json:"time"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Server is the control and dashboard server.
type Server struct {
	app      *fiber.App
	addr     string
	controls Controls
	logger   *slog.Logger

	state   State
	stateMu sync.RWMutex

	turns   []TurnEntry
	turnsMu sync.RWMutex

	statusHub *hub.Hub
	turnHub   *hub.Hub
	imageHub  *hub.Hub
}

// NewServer creates the server. The controls are required; a nil
// value makes press/release return 503.
func NewServer(addr string, controls Controls) *Server {
	s := &Server{
		addr:      addr,
		controls:  controls,
		logger:    slog.Default().With("component", "web"),
		turns:     make([]TurnEntry, 0, 100),
		statusHub: hub.New("status"),
		turnHub:   hub.New("turns"),
		imageHub:  hub.New("images"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "GAIA",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())
	app.Static("/", "./web")

	api := app.Group("/api")
	api.Post("/press", s.handlePress)
	api.Post("/release", s.handleRelease)
	api.Get("/state", s.handleState)
	api.Get("/conversation", s.handleConversation)
	api.Post("/camera/next", s.handleCameraNext)
	api.Post("/camera/off", s.handleCameraOff)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleHubWS(s.statusHub)))
	app.Get("/ws/turns", websocket.New(s.handleHubWS(s.turnHub)))
	app.Get("/ws/images", websocket.New(s.handleHubWS(s.imageHub)))

	s.app = app
	return s
}

// Start runs the hubs and listens on the configured address. Blocks.
func (s *Server) Start() error {
	go s.statusHub.Run()
	go s.turnHub.Run()
	go s.imageHub.Run()

	s.logger.Info("control surface listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("web server stopped", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// UpdateState applies a mutation to the state snapshot and broadcasts
// the result to status subscribers.
func (s *Server) UpdateState(update func(*State)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// AddTurn records a conversation message and broadcasts it.
func (s *Server) AddTurn(role, message string) {
	entry := TurnEntry{
		Time:    time.Now().Format("15:04:05"),
		Role:    role,
		Message: message,
	}

	s.turnsMu.Lock()
	s.turns = append(s.turns, entry)
	if len(s.turns) > 100 {
		s.turns = s.turns[1:]
	}
	s.turnsMu.Unlock()

	s.turnHub.BroadcastJSON(entry)
}

// SendImage streams a generated image (or camera frame) to image
// subscribers.
func (s *Server) SendImage(data []byte) {
	s.imageHub.BroadcastBinary(data)
}
