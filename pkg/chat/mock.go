package chat

import (
	"context"
	"sync"
)

// Mock implements VisionProvider for testing.
// Methods can be customized via function fields; calls are recorded.
type Mock struct {
	// ChatFunc is called when Chat is invoked.
	// If nil, returns a fixed reply.
	ChatFunc func(ctx context.Context, prompt, ragContext string) (string, error)

	// ChatWithImageFunc is called when ChatWithImage is invoked.
	// If nil, falls back to ChatFunc.
	ChatWithImageFunc func(ctx context.Context, prompt string, jpeg []byte) (string, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one invocation for verification.
type MockCall struct {
	Method     string
	Prompt     string
	RAGContext string
	Image      []byte
}

// NewMock creates a mock provider that always replies with reply.
func NewMock(reply string) *Mock {
	return &Mock{
		ChatFunc: func(ctx context.Context, prompt, ragContext string) (string, error) {
			return reply, nil
		},
	}
}

// WithError returns a mock whose calls always fail.
func WithError(err error) *Mock {
	return &Mock{
		ChatFunc: func(ctx context.Context, prompt, ragContext string) (string, error) {
			return "", err
		},
		ChatWithImageFunc: func(ctx context.Context, prompt string, jpeg []byte) (string, error) {
			return "", err
		},
	}
}

// Name returns the backend name.
func (m *Mock) Name() string { return "mock" }

// Chat calls ChatFunc and records the call.
func (m *Mock) Chat(ctx context.Context, prompt, ragContext string) (string, error) {
	m.record(MockCall{Method: "Chat", Prompt: prompt, RAGContext: ragContext})
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, prompt, ragContext)
	}
	return "", nil
}

// ChatWithImage calls ChatWithImageFunc and records the call.
func (m *Mock) ChatWithImage(ctx context.Context, prompt string, jpeg []byte) (string, error) {
	m.record(MockCall{Method: "ChatWithImage", Prompt: prompt, Image: jpeg})
	if m.ChatWithImageFunc != nil {
		return m.ChatWithImageFunc(ctx, prompt, jpeg)
	}
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, prompt, "")
	}
	return "", nil
}

func (m *Mock) record(call MockCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns all recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Verify Mock implements VisionProvider at compile time.
var _ VisionProvider = (*Mock)(nil)
