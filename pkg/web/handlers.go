package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/digital-plusplus/GAIA/pkg/capture"
	"github.com/digital-plusplus/GAIA/pkg/hub"
)

// handlePress maps the push-to-talk press onto the capture session.
func (s *Server) handlePress(c *fiber.Ctx) error {
	if s.controls == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "pipeline not configured",
		})
	}
	if err := s.controls.PressStart(); err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, capture.ErrBusy):
			status = fiber.StatusConflict
		case errors.Is(err, capture.ErrPermissionDenied):
			// Retryable on the next press.
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"recording": true})
}

// handleRelease maps the push-to-talk release onto the capture
// session. A duplicate release is not an error.
func (s *Server) handleRelease(c *fiber.Ctx) error {
	if s.controls == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "pipeline not configured",
		})
	}
	if err := s.controls.ReleaseStop(); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, capture.ErrNotRecording) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"recording": false})
}

// handleState returns the current pipeline state snapshot.
func (s *Server) handleState(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleConversation returns the recent conversation turns.
func (s *Server) handleConversation(c *fiber.Ctx) error {
	s.turnsMu.RLock()
	defer s.turnsMu.RUnlock()
	return c.JSON(s.turns)
}

// handleCameraNext rotates the active frame source.
func (s *Server) handleCameraNext(c *fiber.Ctx) error {
	if s.controls != nil {
		s.controls.NextCamera()
	}
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(fiber.Map{"active_camera": s.state.ActiveCamera})
}

// handleCameraOff disables the active frame source.
func (s *Server) handleCameraOff(c *fiber.Ctx) error {
	if s.controls != nil {
		s.controls.CameraOff()
	}
	return c.JSON(fiber.Map{"active_camera": ""})
}

// handleHubWS subscribes a websocket connection to a broadcast hub.
func (s *Server) handleHubWS(h *hub.Hub) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		client := hub.NewClient(h, c)
		client.Run()
	}
}
