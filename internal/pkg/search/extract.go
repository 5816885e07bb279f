package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	defaultExtractTimeout = 8 * time.Second
	maxPageBytes          = 2 << 20 // 2 MiB of HTML per page is plenty
	maxContentRunes       = 4000
)

// Extractor pulls readable article text out of result pages. Extraction is
// strictly best effort: every failure mode returns an error the caller
// degrades on, never propagates.
type Extractor struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewExtractor creates an extractor with sane timeouts.
func NewExtractor() *Extractor {
	return &Extractor{
		HTTPClient: &http.Client{
			Timeout: defaultExtractTimeout,
		},
		Timeout: defaultExtractTimeout,
	}
}

// Extract fetches the page and runs readability over it. The returned text
// is truncated to keep prompts bounded.
func (e *Extractor) Extract(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(strings.TrimSpace(link))
	if err != nil || !pageURL.IsAbs() {
		return "", errors.New("not a fetchable url")
	}

	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "ValidateAI/1.0 (+market research)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch failed: status=%d", resp.StatusCode)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", errors.New("no readable content")
	}
	return truncateRunes(text, maxContentRunes), nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
