package analysis

// SWOT holds the four ordered SWOT lists.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Result is the structured idea evaluation. Every field is always present,
// including on degraded paths, so consumers never branch on shape. The
// viability score is a display string and is never parsed to a number.
type Result struct {
	OneLiner       string   `json:"oneLiner"`
	MarketSize     string   `json:"marketSize"`
	Monetization   []string `json:"monetization"`
	Competitors    []string `json:"competitors"`
	Moat           string   `json:"moat"`
	TargetAudience string   `json:"targetAudience"`
	Risks          []string `json:"risks"`
	SWOTAnalysis   SWOT     `json:"swotAnalysis"`
	InvestorFit    string   `json:"investorFit"`
	NextSteps      []string `json:"nextSteps"`
	ViabilityScore string   `json:"viabilityScore"`
	RawResponse    string   `json:"rawResponse,omitempty"`
}

// ConfigurationRequiredResult is the degraded payload returned when no AI
// credential is configured. Distinct from parse/transport failures so
// operators can tell setup gaps from genuine outages.
func ConfigurationRequiredResult() *Result {
	return &Result{
		OneLiner:       "Configure Gemini AI API to validate startup ideas",
		MarketSize:     "Gemini API key required for market analysis",
		Monetization:   []string{"Set up Gemini AI in your .env file"},
		Competitors:    []string{"API configuration needed"},
		Moat:           "Add GEMINI_API_KEY to environment variables",
		TargetAudience: "Configure APIs first",
		Risks:          []string{"Missing Gemini API credentials"},
		SWOTAnalysis: SWOT{
			Strengths:     []string{"Check environment setup"},
			Weaknesses:    []string{"Missing API configuration"},
			Opportunities: []string{"Add Gemini API key"},
			Threats:       []string{"Incomplete setup"},
		},
		InvestorFit:    "Fix configuration to get analysis",
		NextSteps:      []string{"Get Gemini API key from Google AI Studio", "Add to .env", "Restart server"},
		ViabilityScore: "Configuration Required",
	}
}

// UnparsedResult is the degraded payload returned when the model answered
// but its output could not be parsed as the structured schema.
func UnparsedResult(raw string) *Result {
	return &Result{
		OneLiner:       "Unable to generate structured analysis",
		MarketSize:     "Analysis not available",
		Monetization:   []string{"Contact support for detailed analysis"},
		Competitors:    []string{"Analysis not available"},
		Moat:           "Analysis not available",
		TargetAudience: "Analysis not available",
		Risks:          []string{"Analysis not available"},
		SWOTAnalysis: SWOT{
			Strengths:     []string{"Analysis not available"},
			Weaknesses:    []string{"Analysis not available"},
			Opportunities: []string{"Analysis not available"},
			Threats:       []string{"Analysis not available"},
		},
		InvestorFit:    "Analysis not available",
		NextSteps:      []string{"Contact support for detailed analysis"},
		ViabilityScore: "N/A",
		RawResponse:    raw,
	}
}

// FallbackResult is the payload attached to infrastructure-failure
// responses so the UI can still render something.
func FallbackResult() *Result {
	return &Result{
		OneLiner:       "Unable to validate idea due to a configuration error",
		MarketSize:     "Please check your API keys and try again",
		Monetization:   []string{"Configure Gemini AI API"},
		Competitors:    []string{"API configuration required"},
		Moat:           "Check environment variables",
		TargetAudience: "Configuration needed",
		Risks:          []string{"Missing API credentials"},
		SWOTAnalysis: SWOT{
			Strengths:     []string{"Check Gemini API key"},
			Weaknesses:    []string{"Verify database connection"},
			Opportunities: []string{"Configure Google CSE"},
			Threats:       []string{"Review environment setup"},
		},
		InvestorFit:    "Fix configuration to get analysis",
		NextSteps:      []string{"Check .env file", "Verify API keys", "Restart server"},
		ViabilityScore: "Configuration Error",
	}
}

// ensureShape fills any list field the model left empty so the output
// shape is stable for consumers.
func ensureShape(r *Result) {
	if len(r.Monetization) == 0 {
		r.Monetization = []string{"Not provided"}
	}
	if len(r.Competitors) == 0 {
		r.Competitors = []string{"Not provided"}
	}
	if len(r.Risks) == 0 {
		r.Risks = []string{"Not provided"}
	}
	if len(r.NextSteps) == 0 {
		r.NextSteps = []string{"Not provided"}
	}
	if len(r.SWOTAnalysis.Strengths) == 0 {
		r.SWOTAnalysis.Strengths = []string{"Not provided"}
	}
	if len(r.SWOTAnalysis.Weaknesses) == 0 {
		r.SWOTAnalysis.Weaknesses = []string{"Not provided"}
	}
	if len(r.SWOTAnalysis.Opportunities) == 0 {
		r.SWOTAnalysis.Opportunities = []string{"Not provided"}
	}
	if len(r.SWOTAnalysis.Threats) == 0 {
		r.SWOTAnalysis.Threats = []string{"Not provided"}
	}
}
