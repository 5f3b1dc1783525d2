package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/digital-plusplus/GAIA/pkg/search"
)

func TestNewGoogle(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		if _, err := search.NewGoogle(context.Background(), "", "engine"); !errors.Is(err, search.ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
		if _, err := search.NewGoogle(context.Background(), "key", ""); !errors.Is(err, search.ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})
}

func TestStripHTMLTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"tags removed", "<p>hello <b>world</b></p>", "hello world"},
		{"attributes removed", `<a href="x">link</a>`, "link"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := search.StripHTMLTags(tt.in); got != tt.want {
				t.Errorf("StripHTMLTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMock(t *testing.T) {
	t.Run("records queries", func(t *testing.T) {
		m := search.NewMock("blocks")
		m.Search(context.Background(), "first", 3)
		m.Search(context.Background(), "second", 3)

		queries := m.Queries()
		if len(queries) != 2 || queries[0] != "first" || queries[1] != "second" {
			t.Errorf("queries = %v", queries)
		}
	})

	t.Run("error mock", func(t *testing.T) {
		wantErr := errors.New("unreachable")
		m := search.WithError(wantErr)
		if _, err := m.Search(context.Background(), "q", 3); !errors.Is(err, wantErr) {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}
