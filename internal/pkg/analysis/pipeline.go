package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/validateai/ValidateAI/internal/pkg/search"
)

// Pipeline turns an idea plus search context into a structured Result. It
// never fails past its own boundary: the returned Result is always fully
// shaped and the error is a side channel for logging and bookkeeping.
type Pipeline struct {
	client *GeminiClient
}

// NewPipeline wires an AI client into the pipeline.
func NewPipeline(client *GeminiClient) *Pipeline {
	return &Pipeline{client: client}
}

// NewPipelineFromEnv builds a pipeline with the env-configured client.
func NewPipelineFromEnv() *Pipeline {
	return NewPipeline(NewGeminiClientFromEnv())
}

// Analyze runs one model call and parses the structured evaluation. The
// non-nil error cases still return a renderable degraded Result.
func (p *Pipeline) Analyze(ctx context.Context, idea string, results []search.Result) (*Result, error) {
	if !p.client.IsConfigured() {
		return ConfigurationRequiredResult(), fmt.Errorf("gemini not configured")
	}

	text, err := p.client.GenerateContent(ctx, BuildPrompt(idea, results))
	if err != nil {
		log.Printf("Gemini call failed: %v", err)
		return UnparsedResult(""), err
	}

	result, err := ParseResult(text)
	if err != nil {
		log.Printf("Error parsing Gemini response: %v", err)
		return UnparsedResult(text), err
	}
	return result, nil
}

// ParseResult parses model text output as the structured schema, stripping
// optional markdown code fences first.
func ParseResult(text string) (*Result, error) {
	cleaned := stripCodeFences(text)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, err
	}
	ensureShape(&result)
	return &result, nil
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
