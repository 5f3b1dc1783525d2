package camera_test

import (
	"errors"
	"testing"

	"github.com/digital-plusplus/GAIA/pkg/camera"
)

func TestSelector(t *testing.T) {
	t.Run("starts OFF", func(t *testing.T) {
		s := camera.NewSelector(camera.NewMockSource("cam-0", nil))
		if s.Active() != nil {
			t.Error("new selector should start OFF")
		}
	})

	t.Run("cycles through sources and back to OFF", func(t *testing.T) {
		s := camera.NewSelector(
			camera.NewMockSource("cam-0", nil),
			camera.NewMockSource("cam-1", nil),
		)

		if got := s.Next(); got != "cam-0" {
			t.Errorf("first Next = %q, want cam-0", got)
		}
		if got := s.Next(); got != "cam-1" {
			t.Errorf("second Next = %q, want cam-1", got)
		}
		if got := s.Next(); got != "" {
			t.Errorf("third Next = %q, want OFF", got)
		}
		if got := s.Next(); got != "cam-0" {
			t.Errorf("fourth Next = %q, want cam-0", got)
		}
	})

	t.Run("no sources stays OFF", func(t *testing.T) {
		s := camera.NewSelector()
		if got := s.Next(); got != "" {
			t.Errorf("Next with no sources = %q, want OFF", got)
		}
		if _, err := s.CaptureFrame(); !errors.Is(err, camera.ErrNoActiveSource) {
			t.Errorf("expected ErrNoActiveSource, got %v", err)
		}
	})

	t.Run("Off resets position", func(t *testing.T) {
		s := camera.NewSelector(camera.NewMockSource("cam-0", nil))
		s.Next()
		s.Off()
		if s.Active() != nil {
			t.Error("selector should be OFF after Off")
		}
	})

	t.Run("OnChange fires with active name", func(t *testing.T) {
		var names []string
		s := camera.NewSelector(camera.NewMockSource("cam-0", nil))
		s.OnChange = func(name string) { names = append(names, name) }

		s.Next()
		s.Next()
		s.Off() // already OFF, no callback

		want := []string{"cam-0", ""}
		if len(names) != len(want) {
			t.Fatalf("got %d callbacks, want %d", len(names), len(want))
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("callback %d = %q, want %q", i, names[i], want[i])
			}
		}
	})

	t.Run("CaptureFrame uses active source", func(t *testing.T) {
		src := camera.NewMockSource("cam-0", []byte("jpeg"))
		s := camera.NewSelector(src)
		s.Next()

		frame, err := s.CaptureFrame()
		if err != nil {
			t.Fatalf("CaptureFrame: %v", err)
		}
		if string(frame) != "jpeg" {
			t.Errorf("frame = %q", frame)
		}
		if src.Calls != 1 {
			t.Errorf("Calls = %d, want 1", src.Calls)
		}
	})
}
