package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/digital-plusplus/GAIA/internal/httpc"
)

const providerGoogle = "google"

// tagPattern matches HTML tags for the crude page-to-text conversion.
var tagPattern = regexp.MustCompile("<.*?>")

// Google implements Provider on the Google Custom Search JSON API.
// With page fetching enabled it downloads each result page and strips
// the markup, so the model receives page text rather than the two-line
// search snippet.
type Google struct {
	svc        *customsearch.Service
	engineID   string
	fetchPages bool
	logger     *slog.Logger
}

// GoogleOption configures the Google provider.
type GoogleOption func(*Google)

// WithPageContent downloads each result page instead of relying on the
// search snippet. Slower, much richer context.
func WithPageContent() GoogleOption {
	return func(g *Google) { g.fetchPages = true }
}

// WithGoogleLogger sets the structured logger.
func WithGoogleLogger(l *slog.Logger) GoogleOption {
	return func(g *Google) { g.logger = l }
}

// NewGoogle creates a Custom Search provider. The engine ID identifies
// the programmable search engine to query.
func NewGoogle(ctx context.Context, apiKey, engineID string, opts ...GoogleOption) (*Google, error) {
	if apiKey == "" || engineID == "" {
		return nil, ErrNoAPIKey
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("search [%s]: %w", providerGoogle, err)
	}

	g := &Google{
		svc:      svc,
		engineID: engineID,
		logger:   slog.Default().With("component", "search.google"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name returns the backend name.
func (g *Google) Name() string { return providerGoogle }

// Search queries the configured engine and renders the topN results as
// delimiter-framed context blocks.
func (g *Google) Search(ctx context.Context, query string, topN int) (string, error) {
	if topN <= 0 {
		topN = 3
	}

	resp, err := g.svc.Cse.List().
		Cx(g.engineID).
		Q(query).
		Num(int64(topN)).
		Context(ctx).
		Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok {
			return "", &APIError{StatusCode: apiErr.Code, Message: apiErr.Message, Provider: providerGoogle}
		}
		return "", fmt.Errorf("search [%s]: %w", providerGoogle, err)
	}

	if len(resp.Items) == 0 {
		return "", ErrNoResults
	}

	var b strings.Builder
	for i, item := range resp.Items {
		if i >= topN {
			break
		}

		content := item.Snippet
		if g.fetchPages {
			if page, err := g.pageContent(ctx, item.Link); err == nil {
				content = page
			} else {
				g.logger.Warn("page fetch failed, using snippet", "url", item.Link, "error", err)
			}
		}

		b.WriteString("\n===\n")
		b.WriteString("URL:" + item.Link)
		b.WriteString("CONTENT:" + content)
		b.WriteString("===\n")
	}

	g.logger.Debug("search complete", "query", query, "results", len(resp.Items))
	return b.String(), nil
}

// pageContent downloads a page and strips its HTML tags.
func (g *Google) pageContent(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Page bodies can be huge; the model only needs the head of them.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", err
	}
	return StripHTMLTags(string(body)), nil
}

// StripHTMLTags removes HTML tags from a page body.
func StripHTMLTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
