package tts

import (
	"context"
	"sync"
)

// Mock is a mock TTS provider for testing. It records every
// synthesized text and returns a canned result, or a configured error.
type Mock struct {
	mu sync.Mutex

	// SynthesizeFunc overrides the default behavior when set.
	SynthesizeFunc func(ctx context.Context, text string) (*AudioResult, error)

	// Calls records the text of each Synthesize invocation.
	Calls []string

	name string
	err  error
}

// NewMock creates a mock provider that returns a small fixed result.
func NewMock(name string) *Mock {
	return &Mock{name: name}
}

// WithError configures the mock to fail every Synthesize call.
func (m *Mock) WithError(err error) *Mock {
	m.err = err
	return m
}

// Name returns the mock's configured name.
func (m *Mock) Name() string { return m.name }

// Synthesize records the call and returns the canned result or error.
func (m *Mock) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text)
	}
	if m.err != nil {
		return nil, WrapError(m.name, m.err)
	}
	return &AudioResult{
		Audio:     []byte("audio"),
		Format:    AudioFormat{Encoding: "mp3_44100_128", SampleRate: 44100, Channels: 1},
		CharCount: len(text),
	}, nil
}

// CallCount returns the number of Synthesize invocations.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Reset clears recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}

// MockSink is a Sink that records every played result.
type MockSink struct {
	mu      sync.Mutex
	Played  []*AudioResult
	PlayErr error
}

// Play records the result.
func (s *MockSink) Play(result *AudioResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PlayErr != nil {
		return s.PlayErr
	}
	s.Played = append(s.Played, result)
	return nil
}

// PlayCount returns the number of Play invocations that succeeded.
func (s *MockSink) PlayCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Played)
}

// Verify mocks satisfy their interfaces at compile time.
var (
	_ Provider = (*Mock)(nil)
	_ Sink     = (*MockSink)(nil)
)
