package search

import (
	"context"
	"sync"
)

// Mock implements Provider for testing.
type Mock struct {
	// SearchFunc is called when Search is invoked.
	// If nil, returns a fixed block.
	SearchFunc func(ctx context.Context, query string, topN int) (string, error)

	mu      sync.Mutex
	queries []string
}

// NewMock creates a mock provider returning the given context block.
func NewMock(result string) *Mock {
	return &Mock{
		SearchFunc: func(ctx context.Context, query string, topN int) (string, error) {
			return result, nil
		},
	}
}

// WithError returns a mock whose Search always fails.
func WithError(err error) *Mock {
	return &Mock{
		SearchFunc: func(ctx context.Context, query string, topN int) (string, error) {
			return "", err
		},
	}
}

// Name returns the backend name.
func (m *Mock) Name() string { return "mock" }

// Search calls SearchFunc and records the query.
func (m *Mock) Search(ctx context.Context, query string, topN int) (string, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, topN)
	}
	return "", nil
}

// CallCount returns how many times Search was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// Queries returns the recorded search queries.
func (m *Mock) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
