package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/digital-plusplus/GAIA/pkg/stt"
)

// DefaultMaxSeconds bounds a single utterance.
const DefaultMaxSeconds = 30

// Session drives one push-to-talk conversational endpoint. Exactly one
// Session exists per microphone; the state machine is the only
// concurrency control protecting the device.
type Session struct {
	mu         sync.Mutex
	state      State
	device     Device
	provider   stt.Provider
	maxSeconds int
	logger     *slog.Logger

	// OnTranscript fires with the transcription result of each
	// completed utterance.
	OnTranscript func(t *stt.Transcript)

	// OnError fires when an utterance fails after capture. The
	// session has already re-armed; the user retries by pressing
	// again.
	OnError func(err error)

	// OnListening toggles the presentation layer's listening
	// indicator. Active from press until the utterance completes.
	OnListening func(active bool)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMaxSeconds bounds the capture duration per utterance.
func WithMaxSeconds(seconds int) SessionOption {
	return func(s *Session) { s.maxSeconds = seconds }
}

// WithSessionLogger sets the structured logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session over a capture device and a
// transcription provider.
func NewSession(device Device, provider stt.Provider, opts ...SessionOption) *Session {
	s := &Session{
		device:     device,
		provider:   provider,
		maxSeconds: DefaultMaxSeconds,
		logger:     slog.Default().With("component", "capture"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InitializeMicrophone forces the device permission prompt with a
// short dummy capture, then immediately releases it. Idempotent: once
// the session is armed, further calls are no-ops. A permission
// failure leaves the session Idle; the caller retries later.
func (s *Session) InitializeMicrophone() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return nil
	}

	if err := s.device.Open(1); err != nil {
		s.logger.Warn("microphone init failed", "error", err)
		return err
	}
	s.device.Stop()
	s.device.Close()

	s.state = Armed
	s.logger.Info("microphone armed", "sample_rate", s.device.SampleRate())
	return nil
}

// PressStart begins capturing an utterance. Valid from Armed or Idle;
// a press while an utterance is in flight returns ErrBusy. A device
// refusal (permission not yet granted) aborts the transition and is
// retryable on the next gesture.
func (s *Session) PressStart() error {
	s.mu.Lock()

	if s.state == Recording || s.state == Processing {
		s.mu.Unlock()
		return ErrBusy
	}

	if err := s.device.Open(s.maxSeconds); err != nil {
		s.mu.Unlock()
		s.logger.Warn("capture open refused", "error", err)
		return err
	}

	s.state = Recording
	listening := s.OnListening
	s.mu.Unlock()

	if listening != nil {
		listening(true)
	}
	s.logger.Debug("recording started", "max_seconds", s.maxSeconds)
	return nil
}

// ReleaseStop ends the capture and hands the utterance to the
// transcription provider asynchronously. A release arriving while the
// previous one is still Processing is silently ignored, so duplicate
// release events (or the duration limit firing concurrently with a
// user release) enqueue exactly one transcription job.
func (s *Session) ReleaseStop() error {
	s.mu.Lock()

	if s.state == Processing {
		s.mu.Unlock()
		return nil
	}
	if s.state != Recording {
		s.mu.Unlock()
		return ErrNotRecording
	}

	samples, err := s.device.Stop()
	s.state = Processing
	s.mu.Unlock()

	if err != nil {
		s.complete(err)
		return err
	}

	utt := NewUtterance(samples, s.device.SampleRate())
	s.logger.Debug("recording stopped",
		"utterance", utt.ID, "duration_s", utt.Duration())

	go s.transcribe(utt)
	return nil
}

// transcribe runs the utterance through the provider and always
// re-arms the session afterward.
func (s *Session) transcribe(utt *Utterance) {
	wavData, err := utt.WAV()
	if err != nil {
		s.complete(err)
		return
	}

	transcript, err := s.provider.Transcribe(context.Background(), wavData)
	if err != nil {
		s.logger.Warn("transcription failed", "utterance", utt.ID, "error", err)
		s.complete(err)
		return
	}

	s.logger.Info("transcription complete",
		"utterance", utt.ID, "provider", s.provider.Name(), "text", transcript.Text)
	s.complete(nil)

	if s.OnTranscript != nil {
		s.OnTranscript(transcript)
	}
}

// complete transitions Processing back to Armed and releases the
// capture device. Skipping the device release silently drops every
// utterance after the first on platforms that serialize device
// access.
func (s *Session) complete(uttErr error) {
	s.mu.Lock()
	s.device.Close()
	s.state = Armed
	listening := s.OnListening
	s.mu.Unlock()

	if listening != nil {
		listening(false)
	}
	if uttErr != nil && !errors.Is(uttErr, ErrNoSamples) && s.OnError != nil {
		s.OnError(uttErr)
	}
}
