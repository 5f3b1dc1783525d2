package history_test

import (
	"strings"
	"testing"
	"time"

	"github.com/digital-plusplus/GAIA/pkg/history"
)

func TestHistoryAppend(t *testing.T) {
	h := history.New()
	h.Append(history.RoleUser, "hello")
	h.Append(history.RoleModel, "hi there")

	if h.Len() != 2 {
		t.Fatalf("expected 2 turns, got %d", h.Len())
	}

	reply, ok := h.LatestReply()
	if !ok || reply != "hi there" {
		t.Errorf("LatestReply = %q, %v", reply, ok)
	}
}

func TestVisionTurnLifecycle(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff}

	t.Run("finalize removes user turn and image, keeps reply", func(t *testing.T) {
		h := history.New()
		h.Append(history.RoleUser, "hello")
		h.Append(history.RoleModel, "hi")
		h.AppendImage("what do you see", jpeg)

		h.FinalizeVisionTurn("I see a desk")

		turns := h.Turns()
		if len(turns) != 3 {
			t.Fatalf("expected 3 turns, got %d", len(turns))
		}
		for _, turn := range turns {
			if turn.Image != nil {
				t.Error("image attachment survived finalization")
			}
			if turn.Text == "what do you see" {
				t.Error("vision user turn survived finalization")
			}
		}
		if turns[2].Role != history.RoleModel || turns[2].Text != "I see a desk" {
			t.Errorf("last turn = %+v, want model reply", turns[2])
		}
	})

	t.Run("finalize without pending turn appends normally", func(t *testing.T) {
		h := history.New()
		h.Append(history.RoleUser, "hello")
		h.FinalizeVisionTurn("hi")
		if h.Len() != 2 {
			t.Errorf("expected 2 turns, got %d", h.Len())
		}
	})

	t.Run("pop rolls back a pending vision turn", func(t *testing.T) {
		h := history.New()
		h.AppendImage("look at this", jpeg)
		turn, ok := h.Pop()
		if !ok || turn.Image == nil {
			t.Fatalf("Pop = %+v, %v", turn, ok)
		}
		if h.Len() != 0 {
			t.Errorf("expected empty history, got %d turns", h.Len())
		}
	})
}

func TestStripLastImage(t *testing.T) {
	h := history.New()
	h.AppendImage("look", []byte{1, 2, 3})
	h.StripLastImage()

	turns := h.Turns()
	if turns[0].Image != nil {
		t.Error("expected image stripped")
	}
	if turns[0].Text != "look" {
		t.Error("expected text retained")
	}
}

func TestBuildPreamble(t *testing.T) {
	date := time.Date(2025, time.April, 19, 0, 0, 0, 0, time.UTC)

	t.Run("identity and date", func(t *testing.T) {
		p := history.BuildPreamble(history.PreambleConfig{Identity: "Gaia, a friendly guide", Date: date})
		if !strings.HasPrefix(p, "You are Gaia, a friendly guide") {
			t.Errorf("missing identity line: %q", p)
		}
		if !strings.Contains(p, "Today is April 19, 2025") {
			t.Errorf("missing temporal anchor: %q", p)
		}
		if strings.Contains(p, "maximum") {
			t.Error("unexpected word limit in preamble")
		}
	})

	t.Run("word limit", func(t *testing.T) {
		p := history.BuildPreamble(history.PreambleConfig{Identity: "Gaia", MaxWords: 40, Date: date})
		if !strings.Contains(p, "Answer all questions in maximum 40 words") {
			t.Errorf("missing word limit: %q", p)
		}
	})

	t.Run("context appears verbatim between delimiters", func(t *testing.T) {
		p := history.BuildPreamble(history.PreambleConfig{
			Identity: "Gaia",
			Date:     date,
			Context:  "The museum opens at 9am.",
		})
		if !strings.Contains(p, "===\nThe museum opens at 9am.\n===") {
			t.Errorf("context not delimited verbatim: %q", p)
		}
		if strings.Contains(p, history.RefusalInstruction) {
			t.Error("refusal instruction present without ClosedContext")
		}
	})

	t.Run("closed context appends refusal instruction exactly once", func(t *testing.T) {
		p := history.BuildPreamble(history.PreambleConfig{
			Identity:      "Gaia",
			Date:          date,
			Context:       "The museum opens at 9am.",
			ClosedContext: true,
		})
		if n := strings.Count(p, history.RefusalInstruction); n != 1 {
			t.Errorf("refusal instruction appears %d times, want 1", n)
		}
	})
}

func TestFormatContext(t *testing.T) {
	t.Run("empty context renders nothing", func(t *testing.T) {
		if got := history.FormatContext("", true); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("same template as preamble", func(t *testing.T) {
		block := history.FormatContext("snippet", false)
		p := history.BuildPreamble(history.PreambleConfig{Identity: "Gaia", Context: "snippet"})
		if !strings.HasSuffix(p, block) {
			t.Error("preamble does not reuse the context template")
		}
	})
}
