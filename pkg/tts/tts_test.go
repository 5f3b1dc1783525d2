package tts_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/digital-plusplus/GAIA/pkg/tts"
)

func TestNewElevenLabs(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := tts.NewElevenLabs(tts.WithVoice("voice"))
		if !errors.Is(err, tts.ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})

	t.Run("requires voice ID", func(t *testing.T) {
		_, err := tts.NewElevenLabs(tts.WithAPIKey("key"))
		if !errors.Is(err, tts.ErrNoVoice) {
			t.Errorf("expected ErrNoVoice, got %v", err)
		}
	})
}

func TestElevenLabsSynthesize(t *testing.T) {
	t.Run("returns audio bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/text-to-speech/voice-1" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("xi-api-key") != "key" {
				t.Errorf("missing xi-api-key header")
			}
			w.Write([]byte("mp3-bytes"))
		}))
		defer server.Close()

		provider, err := tts.NewElevenLabs(
			tts.WithAPIKey("key"),
			tts.WithVoice("voice-1"),
			tts.WithBaseURL(server.URL),
		)
		if err != nil {
			t.Fatalf("NewElevenLabs: %v", err)
		}

		result, err := provider.Synthesize(context.Background(), "hello")
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		if string(result.Audio) != "mp3-bytes" {
			t.Errorf("unexpected audio %q", result.Audio)
		}
		if result.CharCount != 5 {
			t.Errorf("CharCount = %d, want 5", result.CharCount)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		provider, _ := tts.NewElevenLabs(tts.WithAPIKey("key"), tts.WithVoice("v"))
		_, err := provider.Synthesize(context.Background(), "")
		if !errors.Is(err, tts.ErrEmptyText) {
			t.Errorf("expected ErrEmptyText, got %v", err)
		}
	})

	t.Run("API error surfaces status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		provider, _ := tts.NewElevenLabs(
			tts.WithAPIKey("key"),
			tts.WithVoice("v"),
			tts.WithBaseURL(server.URL),
		)
		_, err := provider.Synthesize(context.Background(), "hello")
		var apiErr *tts.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
		}
	})
}

func TestSpeechifySynthesize(t *testing.T) {
	t.Run("decodes base64 envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/audio/speech" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer key" {
				t.Errorf("missing bearer token")
			}
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["model"] != tts.ModelSimbaEnglish {
				t.Errorf("model = %v", body["model"])
			}
			json.NewEncoder(w).Encode(map[string]string{
				"audio_data": base64.StdEncoding.EncodeToString([]byte("simba-mp3")),
			})
		}))
		defer server.Close()

		provider, err := tts.NewSpeechify(
			tts.WithAPIKey("key"),
			tts.WithBaseURL(server.URL),
		)
		if err != nil {
			t.Fatalf("NewSpeechify: %v", err)
		}

		result, err := provider.Synthesize(context.Background(), "hello")
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		if string(result.Audio) != "simba-mp3" {
			t.Errorf("unexpected audio %q", result.Audio)
		}
	})

	t.Run("malformed envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"audio_data": "not-base64!!!"}`))
		}))
		defer server.Close()

		provider, _ := tts.NewSpeechify(tts.WithAPIKey("key"), tts.WithBaseURL(server.URL))
		_, err := provider.Synthesize(context.Background(), "hello")
		if !errors.Is(err, tts.ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})
}

func TestMock(t *testing.T) {
	t.Run("records calls", func(t *testing.T) {
		m := tts.NewMock("mock")
		m.Synthesize(context.Background(), "one")
		m.Synthesize(context.Background(), "two")
		if m.CallCount() != 2 {
			t.Errorf("CallCount = %d, want 2", m.CallCount())
		}
		if m.Calls[1] != "two" {
			t.Errorf("Calls[1] = %q", m.Calls[1])
		}
	})

	t.Run("configured error", func(t *testing.T) {
		wantErr := errors.New("provider unavailable")
		m := tts.NewMock("mock").WithError(wantErr)
		_, err := m.Synthesize(context.Background(), "one")
		if !errors.Is(err, wantErr) {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}
