package history

import (
	"fmt"
	"strings"
	"time"
)

// contextHeader and contextDelimiter frame retrieval context so the
// model can tell it apart from the question itself.
const (
	contextHeader    = "\nAnswer the question based on the following context:\n===\n"
	contextDelimiter = "\n==="

	// RefusalInstruction is appended exactly once when the preamble is
	// built with ClosedContext: the model must refuse rather than
	// answer from outside the supplied context.
	RefusalInstruction = "\nIf you can't find the answer in the context then you respond with: " +
		"'I really have no idea!' or 'I don't know, sorry!' or 'Uuuhm, dunno!'"
)

// PreambleConfig describes the one-time system preamble of a session.
type PreambleConfig struct {
	// Identity completes "You are ...".
	Identity string

	// MaxWords caps response length; 0 means unconstrained.
	MaxWords int

	// Date anchors the model in time so it does not reason from its
	// training cutoff. Zero means time.Now.
	Date time.Time

	// Context is an optional knowledge block appended verbatim between
	// the delimiter markers.
	Context string

	// ClosedContext instructs the model to refuse when the answer is
	// not contained in Context.
	ClosedContext bool
}

// BuildPreamble renders the session preamble. It is constructed once at
// session start and prepended to every outbound request; it is never
// part of the mutable turn history.
func BuildPreamble(cfg PreambleConfig) string {
	date := cfg.Date
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	b.WriteString("You are " + cfg.Identity)

	if cfg.MaxWords > 0 {
		fmt.Fprintf(&b, "\nAnswer all questions in maximum %d words\n", cfg.MaxWords)
	}

	b.WriteString("\nToday is " + date.Format("January 2, 2006"))

	// Without this the model reintroduces itself on every turn.
	b.WriteString("\nYou can only mention your name once in your answers, unless you are specifically asked for your name.\n")

	b.WriteString(FormatContext(cfg.Context, cfg.ClosedContext))
	return b.String()
}

// FormatContext renders a context block for a prompt. The same template
// serves the one-time preamble and ad hoc per-turn retrieval context.
// Empty context renders nothing.
func FormatContext(context string, closed bool) string {
	if context == "" {
		return ""
	}
	s := contextHeader + context + contextDelimiter
	if closed {
		s += RefusalInstruction
	}
	return s
}
