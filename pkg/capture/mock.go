package capture

import "sync"

// MockDevice is a Device for testing. It returns configured samples
// and records open/stop/close counts.
type MockDevice struct {
	mu sync.Mutex

	// Samples are returned by Stop.
	Samples []int16

	// OpenErr, when set, fails every Open call.
	OpenErr error

	// StopErr, when set, fails every Stop call.
	StopErr error

	// Call counters.
	Opens  int
	Stops  int
	Closes int

	open bool
	rate int
}

// NewMockDevice creates a mock device at 16 kHz with the given
// samples.
func NewMockDevice(samples []int16) *MockDevice {
	return &MockDevice{Samples: samples, rate: 16000}
}

// SampleRate returns the mock rate.
func (d *MockDevice) SampleRate() int { return d.rate }

// Open records the call.
func (d *MockDevice) Open(maxSeconds int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Opens++
	if d.OpenErr != nil {
		return d.OpenErr
	}
	d.open = true
	return nil
}

// Stop records the call and returns the configured samples.
func (d *MockDevice) Stop() ([]int16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Stops++
	if d.StopErr != nil {
		return nil, d.StopErr
	}
	d.open = false
	return d.Samples, nil
}

// Close records the call.
func (d *MockDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closes++
	d.open = false
	return nil
}

// Verify MockDevice implements Device at compile time.
var _ Device = (*MockDevice)(nil)
