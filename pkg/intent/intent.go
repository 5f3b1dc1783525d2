// Package intent classifies transcribed speech into an action category.
//
// Classification is a priority-ordered, first-match-wins cascade over
// keyword membership: every rule's keyword set is checked against the
// lowercased transcript and the highest-priority matching rule fires.
// Lower-priority matches are ignored even when present, so a sentence
// containing both "search" and "picture" is a web search, not an image
// request. The ordering is a business rule and is pinned by tests.
package intent

import "strings"

// Intent is the action category resolved for one transcript.
type Intent int

const (
	// Conversation is a plain chat turn, the default when nothing matches.
	Conversation Intent = iota

	// VisionConversation is a chat turn grounded on the active camera frame.
	VisionConversation

	// ImageRequest asks for a generated image.
	ImageRequest

	// CameraSwitch rotates to the next camera (or off).
	CameraSwitch

	// WebSearch asks for retrieval context before answering.
	WebSearch

	// Unknown is reserved for callers that cannot act on a category.
	// Classify never returns it; the cascade always has a default.
	Unknown
)

// String returns a human-readable category name.
func (i Intent) String() string {
	switch i {
	case Conversation:
		return "conversation"
	case VisionConversation:
		return "vision"
	case ImageRequest:
		return "image"
	case CameraSwitch:
		return "camera"
	case WebSearch:
		return "websearch"
	default:
		return "unknown"
	}
}

// rule pairs a category with the keywords that select it.
type rule struct {
	intent   Intent
	keywords []string
}

// rules is evaluated top to bottom; the first rule with any keyword
// present wins. Question words resolve to Conversation: they are a
// retrieval cue, ranked above task categories so "what is in this
// picture of yours" stays a chat turn rather than an image request.
var rules = []rule{
	{WebSearch, []string{"search", "find", "web", "online"}},
	{VisionConversation, []string{"see", "look", "view"}},
	{Conversation, []string{"what", "who", "how", "when", "why", "where"}},
	{ImageRequest, []string{"image", "picture", "photo"}},
	{CameraSwitch, []string{"switch"}},
}

// Classify maps a transcript to its action category.
// Matching is a case-insensitive substring test; an empty transcript or
// one matching no keyword is a plain Conversation turn.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return Conversation
}

// TrimAfter returns the lowercased part of input after the last
// occurrence of keyword, or input unchanged when the keyword is absent.
//
// This is a heuristic, not a parser: the match is a plain substring, so
// a query containing "on" as an ordinary word gets truncated there.
// Preserved deliberately; see the package tests before changing it.
func TrimAfter(input, keyword string) string {
	lower := strings.ToLower(input)
	idx := strings.LastIndex(lower, keyword)
	if idx == -1 {
		return input
	}
	return strings.TrimSpace(lower[idx+len(keyword):])
}

// TrimQuery strips search framing from a web-search transcript by
// trimming after "for", then "about", then "on".
// "search the web for news about storms" -> "storms".
func TrimQuery(input string) string {
	return TrimAfter(TrimAfter(TrimAfter(input, "for"), "about"), "on")
}
