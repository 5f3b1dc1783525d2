package tts

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
)

// PlayerSink plays synthesized audio through a local command-line
// player (mpg123 by default). Playback is serialized: two replies
// arriving close together never talk over each other.
type PlayerSink struct {
	mu      sync.Mutex
	command string
	args    []string
	logger  *slog.Logger

	// OnPlaybackStart fires before the player process starts.
	OnPlaybackStart func()

	// OnPlaybackEnd fires after the player process exits.
	OnPlaybackEnd func()
}

// NewPlayerSink creates a sink that pipes audio into an external
// player process. An empty command selects mpg123 reading from stdin.
func NewPlayerSink(command string, args ...string) *PlayerSink {
	if command == "" {
		command = "mpg123"
		args = []string{"-q", "-"}
	}
	return &PlayerSink{
		command: command,
		args:    args,
		logger:  slog.Default().With("component", "tts.sink"),
	}
}

// Play pipes the audio buffer into the player and waits for playback
// to finish.
func (s *PlayerSink) Play(result *AudioResult) error {
	if result == nil || len(result.Audio) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.OnPlaybackStart != nil {
		s.OnPlaybackStart()
	}
	defer func() {
		if s.OnPlaybackEnd != nil {
			s.OnPlaybackEnd()
		}
	}()

	cmd := exec.Command(s.command, s.args...)
	cmd.Stdin = bytes.NewReader(result.Audio)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tts: playback via %s: %w", s.command, err)
	}

	s.logger.Debug("playback complete", "bytes", len(result.Audio), "encoding", result.Format.Encoding)
	return nil
}

// Verify PlayerSink implements Sink at compile time.
var _ Sink = (*PlayerSink)(nil)
