package capture

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	defaultSampleRate = 16000
	framesPerBuffer   = 512
)

// PortAudioDevice captures from the default system microphone via
// PortAudio. It satisfies Device: Open spawns a reader goroutine
// accumulating samples until Stop or the duration bound.
type PortAudioDevice struct {
	mu         sync.Mutex
	stream     *portaudio.Stream
	samples    []int16
	sampleRate int
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewPortAudioDevice initializes PortAudio and returns a device
// capturing at 16 kHz mono, the rate speech models expect.
func NewPortAudioDevice() (*PortAudioDevice, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: portaudio init: %w", err)
	}
	return &PortAudioDevice{sampleRate: defaultSampleRate}, nil
}

// SampleRate returns the capture rate in Hz.
func (d *PortAudioDevice) SampleRate() int { return d.sampleRate }

// Open begins capturing from the default input device.
func (d *PortAudioDevice) Open(maxSeconds int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream != nil {
		return ErrBusy
	}

	in := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(d.sampleRate), len(in), in)
	if err != nil {
		// PortAudio reports both missing devices and denied access
		// the same way; treat as a retryable permission problem.
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	d.stream = stream
	d.samples = d.samples[:0]
	d.done = make(chan struct{})

	maxSamples := maxSeconds * d.sampleRate
	d.wg.Add(1)
	go d.read(stream, in, maxSamples, d.done)
	return nil
}

func (d *PortAudioDevice) read(stream *portaudio.Stream, in []int16, maxSamples int, done chan struct{}) {
	defer d.wg.Done()
	for {
		select {
		case <-done:
			return
		default:
		}

		if err := stream.Read(); err != nil {
			// Overflows happen when the host is busy; keep reading.
			time.Sleep(5 * time.Millisecond)
			continue
		}

		d.mu.Lock()
		d.samples = append(d.samples, in...)
		full := len(d.samples) >= maxSamples
		d.mu.Unlock()

		if full {
			return
		}
	}
}

// Stop ends the capture and returns the accumulated samples.
func (d *PortAudioDevice) Stop() ([]int16, error) {
	d.mu.Lock()
	stream := d.stream
	done := d.done
	d.mu.Unlock()

	if stream == nil {
		return nil, ErrNotRecording
	}

	close(done)
	d.wg.Wait()
	stream.Stop()

	d.mu.Lock()
	samples := make([]int16, len(d.samples))
	copy(samples, d.samples)
	d.mu.Unlock()

	return samples, nil
}

// Close releases the stream so the next Open can reacquire the
// hardware.
func (d *PortAudioDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream == nil {
		return nil
	}
	err := d.stream.Close()
	d.stream = nil
	return err
}

// Terminate shuts PortAudio down. Call once at process exit.
func (d *PortAudioDevice) Terminate() error {
	d.Close()
	return portaudio.Terminate()
}

// Verify PortAudioDevice implements Device at compile time.
var _ Device = (*PortAudioDevice)(nil)
