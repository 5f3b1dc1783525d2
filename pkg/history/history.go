// Package history maintains the ordered turn history of one
// conversation session.
//
// Text history is never truncated here: the configured chat models have
// effectively unbounded context windows, so trimming is a provider-side
// concern. Image attachments are the one exception. A vision turn is
// appended as pending, and finalizing it strips the image and removes
// the user turn entirely, keeping only the model's reply. Later turns
// then carry a memory of what was said about an image without ever
// resending the image bytes or the vision prompt framing.
package history

import (
	"sync"
)

// Role tags one turn with its speaker.
type Role string

const (
	// RoleUser is the human side of the conversation.
	RoleUser Role = "user"

	// RoleModel is the assistant side. Matches the Gemini wire role;
	// OpenAI-compatible backends map this to "assistant" themselves.
	RoleModel Role = "model"
)

// Turn is one message in the conversation history.
type Turn struct {
	Role Role
	Text string

	// Image is an optional JPEG attachment. At most one stored turn
	// carries an image, and never past its own round trip.
	Image []byte
}

// History is an append-only turn sequence with one sanctioned
// exception: a pending vision turn is removed when finalized.
// Safe for concurrent use.
type History struct {
	mu            sync.Mutex
	turns         []Turn
	pendingVision bool
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Append adds a plain text turn.
func (h *History) Append(role Role, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, Turn{Role: role, Text: text})
	h.pendingVision = false
}

// AppendImage adds a user turn carrying a JPEG attachment and marks it
// as the pending vision turn. The turn stays pending until
// FinalizeVisionTurn or Pop removes it.
func (h *History) AppendImage(text string, jpeg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, Turn{Role: RoleUser, Text: text, Image: jpeg})
	h.pendingVision = true
}

// FinalizeVisionTurn completes a vision round trip: the pending user
// turn (prompt and image both) is removed from history and the model's
// reply is appended in its place. Without a pending vision turn the
// reply is appended normally.
func (h *History) FinalizeVisionTurn(reply string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pendingVision && len(h.turns) > 0 {
		h.turns = h.turns[:len(h.turns)-1]
		h.pendingVision = false
	}
	h.turns = append(h.turns, Turn{Role: RoleModel, Text: reply})
}

// StripLastImage drops the image attachment of the most recent turn,
// keeping its text. No-op when the last turn has no image.
func (h *History) StripLastImage() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.turns) == 0 {
		return
	}
	h.turns[len(h.turns)-1].Image = nil
	h.pendingVision = false
}

// Pop removes and returns the most recent turn.
// Used to roll a failed provider call back out of history.
func (h *History) Pop() (Turn, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.turns) == 0 {
		return Turn{}, false
	}
	last := h.turns[len(h.turns)-1]
	h.turns = h.turns[:len(h.turns)-1]
	h.pendingVision = false
	return last, true
}

// LatestReply returns the text of the most recent model turn.
func (h *History) LatestReply() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.turns) - 1; i >= 0; i-- {
		if h.turns[i].Role == RoleModel {
			return h.turns[i].Text, true
		}
	}
	return "", false
}

// Len returns the number of stored turns.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Turns returns a snapshot copy of the history.
func (h *History) Turns() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}
