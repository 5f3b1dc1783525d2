// Package camera manages visual input sources for vision conversations.
//
// A FrameSource produces single JPEG frames on demand. The Selector
// cycles through the registered sources plus a distinguished OFF
// position, so the same "switch camera" command both rotates between
// devices and disables vision entirely.
package camera

import (
	"errors"
	"sync"
)

// ErrNoActiveSource is returned when a frame is requested while the
// selector sits on the OFF position or no sources are registered.
var ErrNoActiveSource = errors.New("camera: no active source")

// FrameSource produces single frames from a visual input.
type FrameSource interface {
	// CaptureFrame grabs one JPEG-encoded frame.
	CaptureFrame() ([]byte, error)

	// Name identifies the source (e.g. "webcam-0", "screen").
	Name() string
}

// Selector cycles through registered frame sources. Position 0 is
// always OFF; real sources occupy positions 1..len(sources).
type Selector struct {
	mu      sync.Mutex
	sources []FrameSource
	current int

	// OnChange fires after every position change with the new active
	// source name, or "" for OFF.
	OnChange func(name string)
}

// NewSelector creates a selector starting in the OFF position.
func NewSelector(sources ...FrameSource) *Selector {
	return &Selector{sources: sources}
}

// Next advances to the next position, wrapping through OFF.
// It returns the newly active source name, or "" for OFF.
func (s *Selector) Next() string {
	s.mu.Lock()
	s.current = (s.current + 1) % (len(s.sources) + 1)
	name := s.activeNameLocked()
	cb := s.OnChange
	s.mu.Unlock()

	if cb != nil {
		cb(name)
	}
	return name
}

// Off moves the selector to the OFF position.
func (s *Selector) Off() {
	s.mu.Lock()
	changed := s.current != 0
	s.current = 0
	cb := s.OnChange
	s.mu.Unlock()

	if changed && cb != nil {
		cb("")
	}
}

// Active returns the currently selected source, or nil when OFF.
func (s *Selector) Active() FrameSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == 0 {
		return nil
	}
	return s.sources[s.current-1]
}

// CaptureFrame grabs a frame from the active source.
func (s *Selector) CaptureFrame() ([]byte, error) {
	src := s.Active()
	if src == nil {
		return nil, ErrNoActiveSource
	}
	return src.CaptureFrame()
}

// Len returns the number of registered sources, excluding OFF.
func (s *Selector) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sources)
}

func (s *Selector) activeNameLocked() string {
	if s.current == 0 {
		return ""
	}
	return s.sources[s.current-1].Name()
}
