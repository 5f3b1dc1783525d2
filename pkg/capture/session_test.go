package capture_test

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/digital-plusplus/GAIA/pkg/capture"
	"github.com/digital-plusplus/GAIA/pkg/stt"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestInitializeMicrophone(t *testing.T) {
	t.Run("arms the session", func(t *testing.T) {
		device := capture.NewMockDevice([]int16{1, 2, 3})
		session := capture.NewSession(device, stt.NewMock("hello"))

		if err := session.InitializeMicrophone(); err != nil {
			t.Fatalf("InitializeMicrophone: %v", err)
		}
		if session.State() != capture.Armed {
			t.Errorf("state = %v, want Armed", session.State())
		}
	})

	t.Run("idempotent once armed", func(t *testing.T) {
		device := capture.NewMockDevice(nil)
		session := capture.NewSession(device, stt.NewMock("hello"))

		session.InitializeMicrophone()
		session.InitializeMicrophone()
		if device.Opens != 1 {
			t.Errorf("Opens = %d, want 1", device.Opens)
		}
	})

	t.Run("permission denial is retryable", func(t *testing.T) {
		device := capture.NewMockDevice(nil)
		device.OpenErr = capture.ErrPermissionDenied
		session := capture.NewSession(device, stt.NewMock("hello"))

		if err := session.InitializeMicrophone(); !errors.Is(err, capture.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
		if session.State() != capture.Idle {
			t.Errorf("state = %v, want Idle", session.State())
		}

		device.OpenErr = nil
		if err := session.InitializeMicrophone(); err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if session.State() != capture.Armed {
			t.Errorf("state after retry = %v, want Armed", session.State())
		}
	})
}

func TestPressRelease(t *testing.T) {
	t.Run("full cycle re-arms", func(t *testing.T) {
		device := capture.NewMockDevice([]int16{1, 2, 3, 4})
		provider := stt.NewMock("hello world")
		session := capture.NewSession(device, provider)

		got := make(chan *stt.Transcript, 1)
		session.OnTranscript = func(tr *stt.Transcript) { got <- tr }

		session.InitializeMicrophone()
		if err := session.PressStart(); err != nil {
			t.Fatalf("PressStart: %v", err)
		}
		if session.State() != capture.Recording {
			t.Errorf("state = %v, want Recording", session.State())
		}
		if err := session.ReleaseStop(); err != nil {
			t.Fatalf("ReleaseStop: %v", err)
		}

		select {
		case tr := <-got:
			if tr.Text != "hello world" {
				t.Errorf("transcript = %q", tr.Text)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("no transcript")
		}

		waitFor(t, func() bool { return session.State() == capture.Armed })
		// Regression for the "only first utterance works" class of
		// bugs: the device must have been released and a new press
		// must succeed.
		if device.Closes < 2 {
			t.Error("device not released after utterance")
		}
		if err := session.PressStart(); err != nil {
			t.Fatalf("second PressStart: %v", err)
		}
	})

	t.Run("duplicate release enqueues one job", func(t *testing.T) {
		device := capture.NewMockDevice([]int16{1, 2, 3, 4})
		provider := stt.NewMock("")
		release := make(chan struct{})
		provider.TranscribeFunc = func(ctx context.Context, wavData []byte) (*stt.Transcript, error) {
			<-release
			return &stt.Transcript{Text: "ok"}, nil
		}
		session := capture.NewSession(device, provider)

		session.InitializeMicrophone()
		session.PressStart()

		if err := session.ReleaseStop(); err != nil {
			t.Fatalf("first ReleaseStop: %v", err)
		}
		// Second release arrives while the first is still Processing.
		if err := session.ReleaseStop(); err != nil {
			t.Fatalf("duplicate ReleaseStop should be ignored, got %v", err)
		}
		close(release)

		waitFor(t, func() bool { return session.State() == capture.Armed })
		if provider.CallCount() != 1 {
			t.Errorf("transcription jobs = %d, want 1", provider.CallCount())
		}
	})

	t.Run("press while busy", func(t *testing.T) {
		device := capture.NewMockDevice([]int16{1})
		session := capture.NewSession(device, stt.NewMock("x"))

		session.InitializeMicrophone()
		session.PressStart()
		if err := session.PressStart(); !errors.Is(err, capture.ErrBusy) {
			t.Errorf("expected ErrBusy, got %v", err)
		}
	})

	t.Run("release without recording", func(t *testing.T) {
		device := capture.NewMockDevice(nil)
		session := capture.NewSession(device, stt.NewMock("x"))
		session.InitializeMicrophone()
		if err := session.ReleaseStop(); !errors.Is(err, capture.ErrNotRecording) {
			t.Errorf("expected ErrNotRecording, got %v", err)
		}
	})

	t.Run("provider failure re-arms and surfaces error", func(t *testing.T) {
		wantErr := errors.New("provider unavailable")
		device := capture.NewMockDevice([]int16{1, 2})
		session := capture.NewSession(device, stt.WithError(wantErr))

		got := make(chan error, 1)
		session.OnError = func(err error) { got <- err }

		session.InitializeMicrophone()
		session.PressStart()
		session.ReleaseStop()

		select {
		case err := <-got:
			if !errors.Is(err, wantErr) {
				t.Errorf("OnError = %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("no error surfaced")
		}
		waitFor(t, func() bool { return session.State() == capture.Armed })
	})

	t.Run("listening indicator toggles", func(t *testing.T) {
		device := capture.NewMockDevice([]int16{1, 2})
		session := capture.NewSession(device, stt.NewMock("x"))

		var toggles []bool
		done := make(chan struct{})
		session.OnListening = func(active bool) {
			toggles = append(toggles, active)
			if !active {
				close(done)
			}
		}

		session.InitializeMicrophone()
		session.PressStart()
		session.ReleaseStop()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("listening indicator never cleared")
		}
		if len(toggles) != 2 || !toggles[0] || toggles[1] {
			t.Errorf("toggles = %v, want [true false]", toggles)
		}
	})
}

func TestUtteranceWAV(t *testing.T) {
	t.Run("encodes a RIFF container", func(t *testing.T) {
		utt := capture.NewUtterance([]int16{0, 1000, -1000, 32767}, 16000)
		data, err := utt.WAV()
		if err != nil {
			t.Fatalf("WAV: %v", err)
		}
		if string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
			t.Errorf("not a WAV container: % x", data[:12])
		}
		// RIFF chunk size covers everything after the first 8 bytes.
		riffSize := binary.LittleEndian.Uint32(data[4:8])
		if int(riffSize) != len(data)-8 {
			t.Errorf("riff size = %d, want %d", riffSize, len(data)-8)
		}
	})

	t.Run("empty capture", func(t *testing.T) {
		utt := capture.NewUtterance(nil, 16000)
		if _, err := utt.WAV(); !errors.Is(err, capture.ErrNoSamples) {
			t.Errorf("expected ErrNoSamples, got %v", err)
		}
	})

	t.Run("duration", func(t *testing.T) {
		utt := capture.NewUtterance(make([]int16, 16000), 16000)
		if utt.Duration() != 1.0 {
			t.Errorf("Duration = %v, want 1.0", utt.Duration())
		}
	})
}
