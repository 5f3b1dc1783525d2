package orchestrator_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/digital-plusplus/GAIA/pkg/camera"
	"github.com/digital-plusplus/GAIA/pkg/chat"
	"github.com/digital-plusplus/GAIA/pkg/orchestrator"
	"github.com/digital-plusplus/GAIA/pkg/search"
	"github.com/digital-plusplus/GAIA/pkg/tti"
	"github.com/digital-plusplus/GAIA/pkg/tts"
)

var errUnavailable = errors.New("provider unavailable")

func TestSay(t *testing.T) {
	t.Run("broadcasts to all speech providers", func(t *testing.T) {
		a := tts.NewMock("a")
		b := tts.NewMock("b")
		sink := &tts.MockSink{}
		o := orchestrator.New(orchestrator.Config{
			Speech:     []tts.Provider{a, b},
			SpeechSink: sink,
		})

		o.Say(context.Background(), "hello")

		if a.CallCount() != 1 || b.CallCount() != 1 {
			t.Errorf("calls = %d/%d, want 1/1", a.CallCount(), b.CallCount())
		}
		if sink.PlayCount() != 2 {
			t.Errorf("played = %d, want 2", sink.PlayCount())
		}
	})

	t.Run("one provider failing does not block the other", func(t *testing.T) {
		failing := tts.NewMock("failing").WithError(errUnavailable)
		working := tts.NewMock("working")
		sink := &tts.MockSink{}
		o := orchestrator.New(orchestrator.Config{
			Speech:     []tts.Provider{failing, working},
			SpeechSink: sink,
		})

		o.Say(context.Background(), "hello")

		if failing.CallCount() != 1 {
			t.Errorf("failing provider not called")
		}
		if working.CallCount() != 1 {
			t.Errorf("working provider not called")
		}
		if sink.PlayCount() != 1 {
			t.Errorf("played = %d, want 1", sink.PlayCount())
		}
	})

	t.Run("no providers is a no-op", func(t *testing.T) {
		o := orchestrator.New(orchestrator.Config{})
		o.Say(context.Background(), "hello") // must not panic
	})
}

func TestConverse(t *testing.T) {
	t.Run("asks every chat provider", func(t *testing.T) {
		a := chat.NewMock("reply-a")
		b := chat.NewMock("reply-b")

		var mu sync.Mutex
		replies := map[string]bool{}
		o := orchestrator.New(orchestrator.Config{
			Chat: []chat.Provider{a, b},
			OnReply: func(provider, text string) {
				mu.Lock()
				replies[text] = true
				mu.Unlock()
			},
		})

		o.Converse(context.Background(), "hello", "")

		if !replies["reply-a"] || !replies["reply-b"] {
			t.Errorf("replies = %v, want both", replies)
		}
	})

	t.Run("partial failure isolated", func(t *testing.T) {
		failing := chat.WithError(errUnavailable)
		working := chat.NewMock("reply")

		var replies []string
		o := orchestrator.New(orchestrator.Config{
			Chat:    []chat.Provider{failing, working},
			OnReply: func(provider, text string) { replies = append(replies, text) },
		})

		o.Converse(context.Background(), "hello", "")

		if failing.CallCount("Chat") != 1 || working.CallCount("Chat") != 1 {
			t.Error("both providers should be called")
		}
		if len(replies) != 1 || replies[0] != "reply" {
			t.Errorf("replies = %v, want [reply]", replies)
		}
	})

	t.Run("retrieval context passed through", func(t *testing.T) {
		m := chat.NewMock("reply")
		o := orchestrator.New(orchestrator.Config{Chat: []chat.Provider{m}})

		o.Converse(context.Background(), "question", "some context")

		calls := m.Calls()
		if len(calls) != 1 || calls[0].RAGContext != "some context" {
			t.Errorf("calls = %+v", calls)
		}
	})
}

func TestConverseWithVision(t *testing.T) {
	t.Run("no active camera speaks apology", func(t *testing.T) {
		vision := chat.NewMock("reply")
		speech := tts.NewMock("tts")
		o := orchestrator.New(orchestrator.Config{
			Vision:     []chat.VisionProvider{vision},
			Speech:     []tts.Provider{speech},
			SpeechSink: &tts.MockSink{},
			Camera:     camera.NewSelector(camera.NewMockSource("cam-0", nil)),
		})

		o.ConverseWithVision(context.Background(), "what do you see")

		if vision.CallCount("ChatWithImage") != 0 {
			t.Error("vision provider called without an active camera")
		}
		if speech.CallCount() != 1 {
			t.Fatalf("apology not spoken")
		}
		if speech.Calls[0] != orchestrator.DefaultVisionApology {
			t.Errorf("spoken = %q", speech.Calls[0])
		}
	})

	t.Run("active camera frame reaches provider", func(t *testing.T) {
		vision := chat.NewMock("I see a fox")
		selector := camera.NewSelector(camera.NewMockSource("cam-0", []byte("jpeg")))
		selector.Next()

		o := orchestrator.New(orchestrator.Config{
			Vision: []chat.VisionProvider{vision},
			Camera: selector,
		})

		o.ConverseWithVision(context.Background(), "what do you see")

		calls := vision.Calls()
		if len(calls) != 1 || string(calls[0].Image) != "jpeg" {
			t.Errorf("calls = %+v", calls)
		}
	})

	t.Run("no vision provider is a no-op", func(t *testing.T) {
		speech := tts.NewMock("tts")
		o := orchestrator.New(orchestrator.Config{
			Speech:     []tts.Provider{speech},
			SpeechSink: &tts.MockSink{},
		})
		o.ConverseWithVision(context.Background(), "what do you see")
		if speech.CallCount() != 0 {
			t.Error("nothing should be spoken")
		}
	})
}

func TestRetrieve(t *testing.T) {
	t.Run("unconfigured returns absent with zero calls", func(t *testing.T) {
		o := orchestrator.New(orchestrator.Config{})
		result, ok := o.Retrieve(context.Background(), "query")
		if ok || result != "" {
			t.Errorf("Retrieve = (%q, %v), want absent", result, ok)
		}
	})

	t.Run("provider result passed through", func(t *testing.T) {
		m := search.NewMock("snippets")
		o := orchestrator.New(orchestrator.Config{Retrieval: m})

		result, ok := o.Retrieve(context.Background(), "query")
		if !ok || result != "snippets" {
			t.Errorf("Retrieve = (%q, %v)", result, ok)
		}
		if m.CallCount() != 1 {
			t.Errorf("CallCount = %d", m.CallCount())
		}
	})

	t.Run("provider failure reported as absent", func(t *testing.T) {
		o := orchestrator.New(orchestrator.Config{Retrieval: search.WithError(errUnavailable)})
		_, ok := o.Retrieve(context.Background(), "query")
		if ok {
			t.Error("failed retrieval should report absent context")
		}
	})
}

func TestDispatch(t *testing.T) {
	t.Run("web search trims query and feeds context to chat", func(t *testing.T) {
		retrieval := search.NewMock("snippets")
		chatMock := chat.NewMock("reply")
		o := orchestrator.New(orchestrator.Config{
			Chat:      []chat.Provider{chatMock},
			Retrieval: retrieval,
		})

		o.Dispatch(context.Background(), "search the web for news about storms")

		queries := retrieval.Queries()
		if len(queries) != 1 || queries[0] != "storms" {
			t.Errorf("queries = %v, want [storms]", queries)
		}
		calls := chatMock.Calls()
		if len(calls) != 1 || calls[0].RAGContext != "snippets" {
			t.Errorf("chat calls = %+v", calls)
		}
	})

	t.Run("search without retrieval still converses", func(t *testing.T) {
		chatMock := chat.NewMock("reply")
		o := orchestrator.New(orchestrator.Config{Chat: []chat.Provider{chatMock}})

		o.Dispatch(context.Background(), "search for the weather")

		calls := chatMock.Calls()
		if len(calls) != 1 || calls[0].RAGContext != "" {
			t.Errorf("chat calls = %+v", calls)
		}
	})

	t.Run("camera switch rotates selector", func(t *testing.T) {
		selector := camera.NewSelector(camera.NewMockSource("cam-0", nil))
		o := orchestrator.New(orchestrator.Config{Camera: selector})

		o.Dispatch(context.Background(), "switch camera please")

		if selector.Active() == nil {
			t.Error("selector should have advanced to cam-0")
		}
	})

	t.Run("image request reaches generator", func(t *testing.T) {
		gen := tti.NewMock("tti")
		var gotMIME string
		o := orchestrator.New(orchestrator.Config{
			Image:   gen,
			OnImage: func(image []byte, mimeType string) { gotMIME = mimeType },
		})

		o.Dispatch(context.Background(), "draw me a picture of a fox")

		if gen.CallCount() != 1 {
			t.Fatalf("generator calls = %d", gen.CallCount())
		}
		if gotMIME != "image/jpeg" {
			t.Errorf("OnImage MIME = %q", gotMIME)
		}
	})

	t.Run("plain text converses without retrieval", func(t *testing.T) {
		retrieval := search.NewMock("snippets")
		chatMock := chat.NewMock("reply")
		o := orchestrator.New(orchestrator.Config{
			Chat:      []chat.Provider{chatMock},
			Retrieval: retrieval,
		})

		o.Dispatch(context.Background(), "tell me a story")

		if retrieval.CallCount() != 0 {
			t.Error("retrieval should not be consulted for plain conversation")
		}
		if chatMock.CallCount("Chat") != 1 {
			t.Error("chat provider should be asked")
		}
	})
}
