// Package capture owns the press-to-talk recording session.
//
// A Session is a small state machine (Idle, Armed, Recording,
// Processing) guaranteeing at most one utterance is in flight at a
// time. The microphone is an exclusive resource: the session opens it
// on press, closes it on release, and always releases the device when
// transcription completes so the next press can reacquire it. Devices
// that are held across utterances silently drop every capture after
// the first, which is why completion unconditionally re-arms.
package capture

import "errors"

// State is the recording session state.
type State int

// Session states.
const (
	// Idle means the microphone has not been initialized yet.
	Idle State = iota

	// Armed means the microphone is available and no utterance is in
	// flight.
	Armed

	// Recording means an utterance is being captured.
	Recording

	// Processing means a captured utterance is being transcribed.
	Processing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Recording:
		return "recording"
	case Processing:
		return "processing"
	default:
		return "unknown"
	}
}

// Sentinel errors for the capture package.
var (
	// ErrPermissionDenied is returned when the capture device refused
	// to open. Retryable on the next user gesture, never fatal.
	ErrPermissionDenied = errors.New("capture: microphone permission denied")

	// ErrNotRecording is returned when a stop arrives outside the
	// Recording state (other than the ignored Processing case).
	ErrNotRecording = errors.New("capture: not recording")

	// ErrBusy is returned when a press arrives while an utterance is
	// already in flight.
	ErrBusy = errors.New("capture: utterance in flight")

	// ErrNoSamples is returned when a capture produced no audio.
	ErrNoSamples = errors.New("capture: no samples recorded")
)

// Device is a push-to-talk audio input. Open begins capturing, Stop
// ends the capture and returns the accumulated samples, Close releases
// the underlying hardware. Implementations bound the capture at
// maxSeconds on their own.
type Device interface {
	// Open begins capturing, bounded at maxSeconds.
	Open(maxSeconds int) error

	// Stop ends the capture and returns mono PCM16 samples.
	Stop() ([]int16, error)

	// Close releases the device so the next Open can reacquire it.
	Close() error

	// SampleRate returns the capture rate in Hz.
	SampleRate() int
}
