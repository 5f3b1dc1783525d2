package stt

import (
	"context"
	"sync"
)

// Mock implements Provider for testing.
// Methods can be customized via function fields; calls are recorded.
type Mock struct {
	// TranscribeFunc is called when Transcribe is invoked.
	// If nil, returns a fixed transcript.
	TranscribeFunc func(ctx context.Context, wavData []byte) (*Transcript, error)

	mu    sync.Mutex
	calls int
}

// NewMock creates a mock provider returning the given text.
func NewMock(text string) *Mock {
	return &Mock{
		TranscribeFunc: func(ctx context.Context, wavData []byte) (*Transcript, error) {
			return &Transcript{Text: text, Language: "en"}, nil
		},
	}
}

// WithError returns a mock whose Transcribe always fails.
func WithError(err error) *Mock {
	return &Mock{
		TranscribeFunc: func(ctx context.Context, wavData []byte) (*Transcript, error) {
			return nil, err
		},
	}
}

// Name returns the backend name.
func (m *Mock) Name() string { return "mock" }

// Transcribe calls TranscribeFunc and records the call.
func (m *Mock) Transcribe(ctx context.Context, wavData []byte) (*Transcript, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, wavData)
	}
	return &Transcript{}, nil
}

// CallCount returns how many times Transcribe was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
