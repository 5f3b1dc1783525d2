package tti

import (
	"context"
	"sync"
)

// Mock is a mock text-to-image provider for testing.
type Mock struct {
	mu sync.Mutex

	// GenerateFunc overrides the default behavior when set.
	GenerateFunc func(ctx context.Context, prompt string) (*ImageResult, error)

	// Calls records the prompt of each Generate invocation.
	Calls []string

	name string
	err  error
}

// NewMock creates a mock provider returning a small fixed image.
func NewMock(name string) *Mock {
	return &Mock{name: name}
}

// WithError configures the mock to fail every Generate call.
func (m *Mock) WithError(err error) *Mock {
	m.err = err
	return m
}

// Name returns the mock's configured name.
func (m *Mock) Name() string { return m.name }

// Generate records the call and returns the canned result or error.
func (m *Mock) Generate(ctx context.Context, prompt string) (*ImageResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	if m.err != nil {
		return nil, WrapError(m.name, m.err)
	}
	return &ImageResult{Image: []byte("jpeg"), MIMEType: "image/jpeg"}, nil
}

// CallCount returns the number of Generate invocations.
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

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
