package search

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// querySuffix steers the search engine towards market research material.
const querySuffix = " startup market research"

const batchTimeout = 20 * time.Second

// Adapter augments an idea with live search context. Augment never fails:
// every failure mode maps to labeled placeholder results so the caller
// always has something renderable.
type Adapter struct {
	client    *Client
	extractor *Extractor
}

// NewAdapter wires a client and extractor together.
func NewAdapter(client *Client, extractor *Extractor) *Adapter {
	return &Adapter{client: client, extractor: extractor}
}

// NewAdapterFromEnv builds a fully configured adapter.
func NewAdapterFromEnv() *Adapter {
	return NewAdapter(NewClientFromEnv(), NewExtractor())
}

// Augment searches for market context on the idea and attaches extracted
// page content per result. Each extraction has its own failure boundary: a
// dead or slow link degrades that single result to its snippet.
func (a *Adapter) Augment(ctx context.Context, idea string) []Result {
	if !a.client.IsConfigured() {
		log.Println("Google CSE not configured, using demo search results")
		return DemoResults()
	}

	items, err := a.client.Search(ctx, idea+querySuffix)
	if err != nil {
		if errors.Is(err, ErrBadStatus) {
			log.Printf("Search API error: %v", err)
			return APIErrorResults()
		}
		log.Printf("Search request failed: %v", err)
		return FallbackResults()
	}

	results := make([]Result, len(items))
	for i, item := range items {
		results[i] = Result{
			Title:       orDefault(item.Title, "No title"),
			Link:        orDefault(item.Link, "#"),
			Snippet:     orDefault(item.Snippet, "No description available"),
			DisplayLink: orDefault(item.DisplayLink, "Unknown source"),
		}
	}

	a.extractAll(ctx, results)
	return results
}

// extractAll fans out content extraction across the batch. The group
// context bounds the whole batch; each item is additionally bounded by the
// extractor's own per-item timeout, so one hanging link cannot stall the
// rest indefinitely.
func (a *Adapter) extractAll(ctx context.Context, results []Result) {
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range results {
		g.Go(func() error {
			content, err := a.extractor.Extract(ctx, results[i].Link)
			if err != nil {
				// Snippet-only degradation, never aborts the batch.
				return nil
			}
			results[i].Content = content
			return nil
		})
	}
	_ = g.Wait()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
