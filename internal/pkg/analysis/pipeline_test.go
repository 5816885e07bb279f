package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validateai/ValidateAI/internal/pkg/search"
)

// assertFullyShaped fails when any field a consumer renders is missing.
func assertFullyShaped(t *testing.T, r *Result) {
	t.Helper()
	assert.NotEmpty(t, r.OneLiner)
	assert.NotEmpty(t, r.MarketSize)
	assert.NotEmpty(t, r.Monetization)
	assert.NotEmpty(t, r.Competitors)
	assert.NotEmpty(t, r.Moat)
	assert.NotEmpty(t, r.TargetAudience)
	assert.NotEmpty(t, r.Risks)
	assert.NotEmpty(t, r.SWOTAnalysis.Strengths)
	assert.NotEmpty(t, r.SWOTAnalysis.Weaknesses)
	assert.NotEmpty(t, r.SWOTAnalysis.Opportunities)
	assert.NotEmpty(t, r.SWOTAnalysis.Threats)
	assert.NotEmpty(t, r.InvestorFit)
	assert.NotEmpty(t, r.NextSteps)
	assert.NotEmpty(t, r.ViabilityScore)
}

func TestAnalyzeUnconfigured(t *testing.T) {
	p := NewPipeline(&GeminiClient{APIKey: ""})

	result, err := p.Analyze(context.Background(), "an idea", nil)
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Configuration Required", result.ViabilityScore)
	assertFullyShaped(t, result)

	p = NewPipeline(&GeminiClient{APIKey: "placeholder"})
	result, err = p.Analyze(context.Background(), "an idea", nil)
	assert.Error(t, err)
	assertFullyShaped(t, result)
}

func geminiReply(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(body)
}

func TestAnalyzeSuccess(t *testing.T) {
	model := `{
		"oneLiner": "Uber for dog walking",
		"marketSize": "$1B",
		"monetization": ["subscriptions"],
		"competitors": ["Rover"],
		"moat": "network effects",
		"targetAudience": "urban pet owners",
		"risks": ["regulation"],
		"swotAnalysis": {"strengths":["s"],"weaknesses":["w"],"opportunities":["o"],"threats":["t"]},
		"investorFit": "seed",
		"nextSteps": ["build MVP"],
		"viabilityScore": "7/10"
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash-lite")
		fmt.Fprint(w, geminiReply("```json\n"+model+"\n```"))
	}))
	defer server.Close()

	p := NewPipeline(&GeminiClient{
		APIKey:     "real_key",
		Model:      "gemini-2.0-flash-lite",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	result, err := p.Analyze(context.Background(), "dog walking app", []search.Result{{Title: "t", Snippet: "s"}})
	require.NoError(t, err)
	assert.Equal(t, "Uber for dog walking", result.OneLiner)
	assert.Equal(t, "7/10", result.ViabilityScore)
	assert.Empty(t, result.RawResponse)
	assertFullyShaped(t, result)
}

func TestAnalyzeUnparseableModelOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("Sorry, I cannot help with that."))
	}))
	defer server.Close()

	p := NewPipeline(&GeminiClient{
		APIKey:     "real_key",
		Model:      "gemini-2.0-flash-lite",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	result, err := p.Analyze(context.Background(), "an idea", nil)
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "N/A", result.ViabilityScore)
	assert.Equal(t, "Sorry, I cannot help with that.", result.RawResponse)
	assertFullyShaped(t, result)
}

func TestAnalyzeTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewPipeline(&GeminiClient{
		APIKey:     "real_key",
		Model:      "gemini-2.0-flash-lite",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})

	result, err := p.Analyze(context.Background(), "an idea", nil)
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.RawResponse, "no model text to carry on transport failure")
	assertFullyShaped(t, result)
}

func TestParseResultStripsCodeFences(t *testing.T) {
	result, err := ParseResult("```json\n{\"oneLiner\":\"x\",\"viabilityScore\":\"5/10\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "x", result.OneLiner)
	assert.Equal(t, "5/10", result.ViabilityScore)
}

func TestParseResultFillsEmptyLists(t *testing.T) {
	result, err := ParseResult(`{"oneLiner":"x"}`)
	require.NoError(t, err)
	for _, list := range [][]string{
		result.Monetization, result.Competitors, result.Risks, result.NextSteps,
		result.SWOTAnalysis.Strengths, result.SWOTAnalysis.Weaknesses,
		result.SWOTAnalysis.Opportunities, result.SWOTAnalysis.Threats,
	} {
		assert.Equal(t, []string{"Not provided"}, list)
	}
}

func TestParseResultRejectsNonJSON(t *testing.T) {
	_, err := ParseResult("this is prose, not json")
	assert.Error(t, err)
}

func TestBuildPromptPrefersExtractedContent(t *testing.T) {
	prompt := BuildPrompt("my idea", []search.Result{
		{Title: "A", Snippet: "short snippet", Content: "full extracted article text"},
		{Title: "B", Snippet: "only snippet"},
	})
	assert.Contains(t, prompt, "my idea")
	assert.Contains(t, prompt, "full extracted article text")
	assert.NotContains(t, prompt, "short snippet")
	assert.Contains(t, prompt, "only snippet")
}

func TestBuildPromptClipsLongContent(t *testing.T) {
	long := strings.Repeat("a", 5000)
	prompt := BuildPrompt("idea", []search.Result{{Title: "A", Content: long}})
	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, strings.Repeat("a", 1500))
}
