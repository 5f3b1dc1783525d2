package camera

import "sync"

// MockSource is a FrameSource for testing that returns a fixed frame.
type MockSource struct {
	mu sync.Mutex

	// Frame is returned by every CaptureFrame call.
	Frame []byte

	// Err, when set, fails every CaptureFrame call.
	Err error

	// Calls counts CaptureFrame invocations.
	Calls int

	name string
}

// NewMockSource creates a mock frame source.
func NewMockSource(name string, frame []byte) *MockSource {
	return &MockSource{name: name, Frame: frame}
}

// Name returns the mock's configured name.
func (m *MockSource) Name() string { return m.name }

// CaptureFrame returns the fixed frame or the configured error.
func (m *MockSource) CaptureFrame() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Frame, nil
}

// Verify MockSource implements FrameSource at compile time.
var _ FrameSource = (*MockSource)(nil)
