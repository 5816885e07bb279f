package search

// Result is one market-research search hit. Content carries best-effort
// extracted page text and stays empty when extraction was not possible.
type Result struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
	Content     string `json:"content,omitempty"`
}

// DemoResults are returned when search credentials are absent so the UI
// always has something renderable.
func DemoResults() []Result {
	return []Result{
		{
			Title:       "Market Research Demo",
			Link:        "#",
			Snippet:     "Configure Google Custom Search Engine API to get real market research results for your startup idea.",
			DisplayLink: "setup-required.com",
		},
		{
			Title:       "Competitor Analysis Demo",
			Link:        "#",
			Snippet:     "Real competitor data will appear here once Google CSE is properly configured with valid API keys.",
			DisplayLink: "setup-required.com",
		},
	}
}

// APIErrorResults are returned when the search API answered with a
// non-success status.
func APIErrorResults() []Result {
	return []Result{
		{
			Title:       "Market Research - Search API Error",
			Link:        "#",
			Snippet:     "The search API rejected the request. Please verify your Google CSE configuration.",
			DisplayLink: "demo.example.com",
		},
	}
}

// FallbackResults are returned when the search API was unreachable.
func FallbackResults() []Result {
	return []Result{
		{
			Title:       "Search Error - Using Fallback Data",
			Link:        "#",
			Snippet:     "Unable to fetch live market research. Please check your Google CSE configuration.",
			DisplayLink: "error.fallback.com",
		},
	}
}
