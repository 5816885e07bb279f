package analysis

import (
	"fmt"
	"strings"

	"github.com/validateai/ValidateAI/internal/pkg/search"
)

const maxContextRunesPerResult = 1500

// BuildPrompt combines the idea with a rendering of each search result.
// Extracted page content is preferred over the snippet when available.
func BuildPrompt(idea string, results []search.Result) string {
	var sb strings.Builder

	sb.WriteString("As a startup advisor, analyze this startup idea and provide a comprehensive evaluation:\n\n")
	sb.WriteString(fmt.Sprintf("Startup Idea: %q\n\n", idea))

	if len(results) > 0 {
		sb.WriteString("Current market research context:\n\n")
		for i, r := range results {
			sb.WriteString(fmt.Sprintf("Source %d: %s (%s)\n", i+1, r.Title, r.DisplayLink))
			context := r.Content
			if context == "" {
				context = r.Snippet
			}
			sb.WriteString(clipRunes(context, maxContextRunesPerResult))
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString(`Please provide your analysis in the following JSON format:
{
  "oneLiner": "A concise one-line pitch for this startup",
  "marketSize": "Estimated market size and opportunity",
  "monetization": ["List of suggested monetization models"],
  "competitors": ["Key competitors in this space"],
  "moat": "Analysis of potential competitive advantages/moats",
  "targetAudience": "Primary target audience description",
  "risks": ["Key risks and red flags"],
  "swotAnalysis": {
    "strengths": ["List of strengths"],
    "weaknesses": ["List of weaknesses"],
    "opportunities": ["List of opportunities"],
    "threats": ["List of threats"]
  },
  "investorFit": "Analysis of investor attractiveness",
  "nextSteps": ["Recommended immediate next steps"],
  "viabilityScore": "Score from 1-10 with brief explanation"
}

Provide realistic, actionable insights based on current market conditions.
`)

	return sb.String()
}

func clipRunes(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "…"
}
