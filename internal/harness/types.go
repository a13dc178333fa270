// internal/harness/types.go

// Package harness defines the shared data model of the evaluation pipeline:
// generated test cases, model responses, graded results, calibration metrics,
// and the run summary consumed by report renderers.
package harness

import (
	"fmt"
	"time"
)

// Domain tags one of the seven probing domains.
type Domain string

const (
	DomainMath          Domain = "math"
	DomainCitation      Domain = "citation"
	DomainWisdom        Domain = "wisdom"
	DomainAlchemy       Domain = "alchemy"
	DomainRitual        Domain = "ritual"
	DomainSystemFacts   Domain = "system"
	DomainPhenomenology Domain = "phenomenology"
)

// AllDomains returns every known domain in a stable order.
func AllDomains() []Domain {
	return []Domain{
		DomainMath,
		DomainCitation,
		DomainWisdom,
		DomainAlchemy,
		DomainRitual,
		DomainSystemFacts,
		DomainPhenomenology,
	}
}

// ParseDomain validates a domain tag from configuration input.
func ParseDomain(s string) (Domain, error) {
	for _, d := range AllDomains() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// Difficulty rates how hard a case is expected to be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Behavior names the correct behavior for trap cases, where the point of the
// case is how the model responds rather than what value it returns.
const (
	BehaviorDecline = "decline"
	BehaviorHedge   = "hedge"
	BehaviorEmpty   = "empty"
)

// CaseContext carries the ground truth a validator needs that is not part of
// the comparison target itself. Trap marks cases where the correct behavior
// is to express uncertainty or refuse rather than answer concretely.
type CaseContext struct {
	Trap      bool   `json:"trap"`
	Topic     string `json:"topic,omitempty"`
	Facet     string `json:"facet,omitempty"`
	RiskLevel string `json:"riskLevel,omitempty"`
}

// Expected is the per-domain comparison target. Exactly the fields relevant
// to the case's domain are populated; validators read only their own fields.
// Trap cases set Behavior instead of a factual value.
type Expected struct {
	Value    *float64 `json:"value,omitempty"`
	Behavior string   `json:"behavior,omitempty"`

	Author string `json:"author,omitempty"`
	Source string `json:"source,omitempty"`

	Keywords []string `json:"keywords,omitempty"`

	FacetKey string `json:"facetKey,omitempty"`
	Element  string `json:"element,omitempty"`
	Phase    string `json:"phase,omitempty"`

	RiskLevel string `json:"riskLevel,omitempty"`

	Allowed []string `json:"allowed,omitempty"`

	Acknowledge []string `json:"acknowledge,omitempty"`
	Integrate   []string `json:"integrate,omitempty"`
	Orient      []string `json:"orient,omitempty"`
}

// TestCase is a single generated probe. Immutable once generated; the prompt
// embeds the JSON schema the model is asked to answer with, and Expected plus
// Context carry everything the matching validator needs.
type TestCase struct {
	ID         string      `json:"id"`
	Domain     Domain      `json:"domain"`
	Taxonomy   []string    `json:"taxonomy"`
	Prompt     string      `json:"prompt"`
	Context    CaseContext `json:"context"`
	Expected   Expected    `json:"expected"`
	Difficulty Difficulty  `json:"difficulty"`
}

// TestResponse is the raw model output for one case, enriched during grading
// with the parsed JSON payload and the model's self-reported confidence.
type TestResponse struct {
	CaseID         string         `json:"caseId"`
	ResponseText   string         `json:"responseText"`
	ResponseParsed map[string]any `json:"responseParsed,omitempty"`
	Confidence     *float64       `json:"confidence,omitempty"`
	Reasoning      string         `json:"reasoning,omitempty"`
}

// TestResult is one graded case. Correctness, Confidence, and Evidence are
// always clamped to [0,1]. FormatOK is false when no parseable JSON object
// was found in the response, which short-circuits correctness to zero.
type TestResult struct {
	Case        TestCase       `json:"case"`
	Response    TestResponse   `json:"response"`
	Correctness float64        `json:"correctness"`
	Confidence  float64        `json:"confidence"`
	Evidence    float64        `json:"evidence"`
	FormatOK    bool           `json:"formatOk"`
	Error       string         `json:"error,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// DomainMetrics is the per-domain slice of one run's calibration picture.
type DomainMetrics struct {
	Domain             Domain  `json:"domain"`
	Count              int     `json:"count"`
	Accuracy           float64 `json:"accuracy"`
	MeanConfidence     float64 `json:"meanConfidence"`
	OverconfidenceRate float64 `json:"overconfidenceRate"`
	ECE                float64 `json:"ece"`
}

// GateConfig holds the release thresholds a run is judged against.
// MinDomainAccuracy applies independently to every domain present in the run.
type GateConfig struct {
	MinAccuracy       float64 `json:"minAccuracy"`
	MinDomainAccuracy float64 `json:"minDomainAccuracy"`
	MaxOverconfidence float64 `json:"maxOverconfidence"`
	MaxECE            float64 `json:"maxEce"`
}

// GateReport lists threshold violations as human-readable strings.
// Passed is true iff Failures is empty.
type GateReport struct {
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures"`
}

// TestSummary is the terminal artifact of a run.
type TestSummary struct {
	RunID             string                   `json:"runId"`
	Seed              string                   `json:"seed"`
	Timestamp         time.Time                `json:"timestamp"`
	TotalCases        int                      `json:"totalCases"`
	OverallAccuracy   float64                  `json:"overallAccuracy"`
	OverallConfidence float64                  `json:"overallConfidence"`
	OverallECE        float64                  `json:"overallEce"`
	ByDomain          map[Domain]DomainMetrics `json:"byDomain"`
	Gates             GateReport               `json:"gates"`
}

// RunOutput is the stable structure handed to report renderers.
type RunOutput struct {
	Results []TestResult `json:"results"`
	Summary TestSummary  `json:"summary"`
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
