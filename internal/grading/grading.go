// internal/grading/grading.go

// Package grading converts raw model responses into graded results. Grade is
// total: malformed input degrades to a zero-score result with formatOk=false,
// and an unknown domain degrades to a neutral 0.5 flagged for review. Grading
// the same case and response twice always yields the same result.
package grading

import (
	"context"
	"encoding/json"

	"github.com/spiralogic/halo/internal/harness"
	"github.com/spiralogic/halo/internal/verify"
)

// defaultConfidence is assumed when the model does not report one.
const defaultConfidence = 0.5

// Verdict is what a domain validator returns for one response.
type Verdict struct {
	Correctness float64
	Evidence    float64
	Details     map[string]any
}

// Validator scores one domain's responses against the case's ground truth.
type Validator interface {
	Domain() harness.Domain
	Validate(ctx context.Context, c harness.TestCase, parsed map[string]any) Verdict
}

// Engine dispatches each case to its domain validator.
type Engine struct {
	validators map[harness.Domain]Validator
}

// NewEngine builds an engine with one validator per domain. The verifier is
// used only by the citation validator; pass a disabled client to grade
// offline.
func NewEngine(verifier verify.Verifier) *Engine {
	e := &Engine{validators: map[harness.Domain]Validator{}}
	for _, v := range []Validator{
		mathValidator{},
		citationValidator{verifier: verifier},
		wisdomValidator{},
		alchemyValidator{},
		ritualValidator{},
		systemFactsValidator{},
		phenomenologyValidator{},
	} {
		e.validators[v.Domain()] = v
	}
	return e
}

// Grade scores a single response. It never returns an error: format problems
// and unknown domains are folded into the result itself.
func (e *Engine) Grade(ctx context.Context, c harness.TestCase, resp harness.TestResponse) harness.TestResult {
	result := harness.TestResult{
		Case:       c,
		Response:   resp,
		Confidence: defaultConfidence,
		FormatOK:   true,
	}

	parsed, ok := extractJSONObject(resp.ResponseText)
	if !ok {
		result.FormatOK = false
		result.Correctness = 0
		result.Details = map[string]any{"formatError": "no parseable JSON object in response"}
		return result
	}
	result.Response.ResponseParsed = parsed

	if conf, ok := numberField(parsed, "confidence"); ok {
		result.Confidence = harness.Clamp01(conf)
		result.Response.Confidence = &result.Confidence
	}
	if note, ok := stringField(parsed, "note", "reasoning"); ok {
		result.Response.Reasoning = note
	}

	validator, ok := e.validators[c.Domain]
	if !ok {
		result.Correctness = 0.5
		result.Details = map[string]any{"review": "unknown domain " + string(c.Domain)}
		return result
	}

	verdict := validator.Validate(ctx, c, parsed)
	result.Correctness = harness.Clamp01(verdict.Correctness)
	result.Evidence = harness.Clamp01(verdict.Evidence)
	result.Details = verdict.Details
	return result
}

// extractJSONObject finds the first balanced top-level {...} block in free
// text and parses it. String literals and escapes are respected so braces
// inside quoted values do not unbalance the scan.
func extractJSONObject(text string) (map[string]any, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					var obj map[string]any
					if err := json.Unmarshal([]byte(text[start:i+1]), &obj); err != nil {
						return nil, false
					}
					return obj, true
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}
	return nil, false
}

// stringField returns the first present, non-empty string field among keys.
func stringField(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// numberField returns the first present numeric field among keys.
func numberField(obj map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			switch n := v.(type) {
			case float64:
				return n, true
			case json.Number:
				if f, err := n.Float64(); err == nil {
					return f, true
				}
			}
		}
	}
	return 0, false
}

// stringList coerces a field to a list of strings. A null or absent field
// returns (nil, true): distinguishing "returned nothing" from "malformed".
func stringList(obj map[string]any, key string) ([]string, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, true
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	items := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		items = append(items, s)
	}
	return items, true
}

// fieldIsNull reports whether the field is present-and-null or absent.
func fieldIsNull(obj map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return false
		}
	}
	return true
}
