package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/validateai/ValidateAI/internal/pkg/env"
)

const defaultCSEBaseURL = "https://www.googleapis.com/customsearch/v1"

// ErrBadStatus marks a non-success response from the search API, as
// opposed to a transport-level failure.
var ErrBadStatus = errors.New("search api returned non-success status")

// Client talks to the Google Custom Search Engine REST API.
type Client struct {
	APIKey     string
	CX         string
	BaseURL    string
	MaxResults int

	HTTPClient *http.Client
}

// Item is one raw CSE result item.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

type searchResponse struct {
	Items []Item `json:"items"`
}

// NewClientFromEnv builds a client from GOOGLE_CSE_API_KEY / GOOGLE_CSE_ID.
func NewClientFromEnv() *Client {
	return &Client{
		APIKey:     strings.TrimSpace(env.GetEnv("GOOGLE_CSE_API_KEY", "")),
		CX:         strings.TrimSpace(env.GetEnv("GOOGLE_CSE_ID", "")),
		BaseURL:    strings.TrimSpace(env.GetEnv("GOOGLE_CSE_BASE_URL", defaultCSEBaseURL)),
		MaxResults: 8,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IsConfigured reports whether real credentials are present. The literal
// placeholder values shipped in .env.example count as unconfigured.
func (c *Client) IsConfigured() bool {
	if c.APIKey == "" || c.CX == "" {
		return false
	}
	return c.APIKey != "test_key" && c.CX != "test_id"
}

// Search issues one query and returns the raw result items.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid search base url: %w", err)
	}
	q := u.Query()
	q.Set("key", c.APIKey)
	q.Set("cx", c.CX)
	q.Set("q", query)
	q.Set("num", fmt.Sprintf("%d", c.MaxResults))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrBadStatus, resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if len(out.Items) > c.MaxResults {
		out.Items = out.Items[:c.MaxResults]
	}
	return out.Items, nil
}
