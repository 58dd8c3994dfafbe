package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/specvet/specvet/pkg/domain/ai"
	"github.com/specvet/specvet/pkg/domain/check"
	"github.com/specvet/specvet/pkg/domain/quality"
)

// Reasoning-backend output is untrusted: it is fence-stripped, schema
// validated, and only then unmarshaled. Any violation is an ordinary
// failure that the calling check degrades on.

const ambiguitySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["overall_ambiguity_level"],
  "properties": {
    "overall_ambiguity_level": { "type": "string", "enum": ["low", "medium", "high"] },
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text", "reason"],
        "properties": {
          "location":   { "type": "string" },
          "text":       { "type": "string" },
          "reason":     { "type": "string" },
          "suggestion": { "type": "string" }
        }
      }
    }
  }
}`

const contradictionSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["contradictions"],
  "properties": {
    "contradictions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["item_a", "item_b", "description"],
        "properties": {
          "item_a":      { "type": "string" },
          "item_b":      { "type": "string" },
          "description": { "type": "string" },
          "resolution":  { "type": "string" }
        }
      }
    }
  }
}`

const adversarySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["approved"],
  "properties": {
    "approved": { "type": "boolean" },
    "issues": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["severity", "description"],
        "properties": {
          "severity":    { "type": "string", "enum": ["blocker", "warning"] },
          "description": { "type": "string" }
        }
      }
    }
  }
}`

var (
	ambiguitySchemaLoader     = gojsonschema.NewStringLoader(ambiguitySchemaJSON)
	contradictionSchemaLoader = gojsonschema.NewStringLoader(contradictionSchemaJSON)
	adversarySchemaLoader     = gojsonschema.NewStringLoader(adversarySchemaJSON)
)

type ambiguityResponse struct {
	Findings              []check.AmbiguityFinding `json:"findings"`
	OverallAmbiguityLevel check.AmbiguityLevel     `json:"overall_ambiguity_level"`
}

type contradictionResponse struct {
	Contradictions []struct {
		ItemA       string `json:"item_a"`
		ItemB       string `json:"item_b"`
		Description string `json:"description"`
		Resolution  string `json:"resolution"`
	} `json:"contradictions"`
}

const ambiguityPrompt = `Task: Review the following specification text for context-specific ambiguous phrasing.
Report every passage a coding agent could interpret in more than one way.

Return ONLY a JSON object with no surrounding text, no markdown, and no code fences:
{"findings": [{"location": "...", "text": "...", "reason": "...", "suggestion": "..."}], "overall_ambiguity_level": "low|medium|high"}

Specification text:
`

const contradictionPrompt = `Task: Review the following specification for statements that cannot both hold.
Look for cross-cutting contradictions between any two requirements, constraints or scenarios.

Return ONLY a JSON object with no surrounding text, no markdown, and no code fences:
{"contradictions": [{"item_a": "...", "item_b": "...", "description": "...", "resolution": "..."}]}

Specification text:
`

const adversaryPrompt = `Task: You are an adversarial reviewer. Attack the following specification: find missing requirements, untestable claims, and hidden assumptions that would sink an implementation.
Tag each finding as "blocker" (would produce a wrong implementation) or "warning" (would produce a degraded one). Approve only if the spec survives.

Return ONLY a JSON object with no surrounding text, no markdown, and no code fences:
{"approved": true|false, "issues": [{"severity": "blocker|warning", "description": "..."}]}

Specification text:
`

// askAmbiguity runs the reasoning tier of the ambiguity check.
func askAmbiguity(ctx context.Context, provider ai.Provider, specText string) (*ambiguityResponse, error) {
	payload, err := reason(ctx, provider, ambiguityPrompt+specText, ambiguitySchemaLoader)
	if err != nil {
		return nil, err
	}

	var resp ambiguityResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal ambiguity response: %w", err)
	}
	return &resp, nil
}

// askContradictions runs the reasoning tier of the contradiction check.
func askContradictions(ctx context.Context, provider ai.Provider, specText string) (*contradictionResponse, error) {
	payload, err := reason(ctx, provider, contradictionPrompt+specText, contradictionSchemaLoader)
	if err != nil {
		return nil, err
	}

	var resp contradictionResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal contradiction response: %w", err)
	}
	return &resp, nil
}

// askAdversary runs the adversarial review pass.
func askAdversary(ctx context.Context, provider ai.Provider, specText string) (*quality.AdversaryReviewResult, error) {
	payload, err := reason(ctx, provider, adversaryPrompt+specText, adversarySchemaLoader)
	if err != nil {
		return nil, err
	}

	var resp quality.AdversaryReviewResult
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal adversary response: %w", err)
	}
	return &resp, nil
}

// reason sends one prompt and returns the schema-validated JSON payload.
func reason(ctx context.Context, provider ai.Provider, prompt string, schema gojsonschema.JSONLoader) (string, error) {
	if provider == nil {
		return "", fmt.Errorf("no reasoning backend configured")
	}

	resp, err := provider.Complete(ctx, ai.CompletionRequest{
		Prompt: prompt,
		System: "You are a specification quality analyst. Respond with JSON only.",
	})
	if err != nil {
		return "", fmt.Errorf("reasoning backend call failed: %w", err)
	}

	payload := extractJSONPayload(resp.Text)
	if payload == "" {
		return "", fmt.Errorf("reasoning backend returned no JSON payload")
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(payload))
	if err != nil {
		return "", fmt.Errorf("reasoning backend returned invalid JSON: %w", err)
	}
	if !result.Valid() {
		return "", fmt.Errorf("reasoning backend output failed schema validation: %v", result.Errors())
	}

	return payload, nil
}

// extractJSONPayload strips markdown fences and surrounding prose,
// returning the first JSON object or array in the text.
func extractJSONPayload(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return clean
	}

	startObject := strings.Index(clean, "{")
	startArray := strings.Index(clean, "[")
	start := startObject
	if start == -1 || (startArray != -1 && startArray < start) {
		start = startArray
	}
	if start == -1 {
		return ""
	}

	endObject := strings.LastIndex(clean, "}")
	endArray := strings.LastIndex(clean, "]")
	end := endObject
	if endArray > end {
		end = endArray
	}
	if end <= start {
		return ""
	}

	return strings.TrimSpace(clean[start : end+1])
}
