// internal/orchestrator/orchestrator.go

// Package orchestrator drives a full evaluation run: generation, model
// invocation, grading, metric aggregation, and gate evaluation. A run is
// single-pass; the phases never loop back. Model-call failures are recorded
// as zero-score results and never abort the run.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spiralogic/halo/internal/appconfig"
	"github.com/spiralogic/halo/internal/calibration"
	"github.com/spiralogic/halo/internal/generators"
	"github.com/spiralogic/halo/internal/grading"
	"github.com/spiralogic/halo/internal/harness"
	"github.com/spiralogic/halo/internal/logging"
	"github.com/spiralogic/halo/internal/providers"
	"github.com/spiralogic/halo/internal/rng"
)

// Phase names the stages of a run, in order.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseGenerating  Phase = "generating"
	PhaseRunning     Phase = "running"
	PhaseGrading     Phase = "grading"
	PhaseAggregating Phase = "aggregating"
	PhaseGated       Phase = "gated"
	PhaseDone        Phase = "done"
)

// Ritual and system-facts pools are small, so those domains get reduced
// counts with a floor even when a uniform countPerDomain is requested.
const (
	reducedCountDivisor = 2
	minDomainCount      = 3
)

// Orchestrator owns the only mutable state of a run: the RNG stream during
// generation and the accumulating results list while running.
type Orchestrator struct {
	cfg    *appconfig.Config
	client providers.ModelClient
	engine *grading.Engine
	phase  Phase
}

// New builds an orchestrator around a model client and a grading engine.
func New(cfg *appconfig.Config, client providers.ModelClient, engine *grading.Engine) *Orchestrator {
	return &Orchestrator{cfg: cfg, client: client, engine: engine, phase: PhaseIdle}
}

// Phase reports the current phase, chiefly for logging and tests.
func (o *Orchestrator) Phase() Phase { return o.phase }

func (o *Orchestrator) transition(next Phase) {
	logging.LogEvent("[RUN] phase %s -> %s", o.phase, next)
	o.phase = next
}

// Run executes the full pipeline and produces the terminal run output. The
// returned error covers setup problems only (bad domain list, generator
// failure); per-case model failures are folded into the results.
func (o *Orchestrator) Run(ctx context.Context) (*harness.RunOutput, error) {
	domains, err := o.cfg.DomainTags()
	if err != nil {
		return nil, err
	}

	o.transition(PhaseGenerating)
	cases, err := o.generate(domains)
	if err != nil {
		return nil, err
	}

	o.transition(PhaseRunning)
	responses, callErrors := o.invoke(ctx, cases)

	o.transition(PhaseGrading)
	results := make([]harness.TestResult, 0, len(cases))
	for i, c := range cases {
		result := o.engine.Grade(ctx, c, responses[i])
		if msg := callErrors[i]; msg != "" {
			result.Error = msg
		}
		logging.LogCase("graded", c.ID, string(c.Domain),
			fmt.Sprintf("correctness=%.2f confidence=%.2f formatOk=%t", result.Correctness, result.Confidence, result.FormatOK))
		results = append(results, result)
	}

	o.transition(PhaseAggregating)
	metrics := calibration.Calculate(results)

	o.transition(PhaseGated)
	gates := EvaluateGates(o.cfg.Gates, metrics)

	summary := harness.TestSummary{
		RunID:             uuid.NewString(),
		Seed:              o.cfg.Seed,
		Timestamp:         time.Now().UTC(),
		TotalCases:        len(results),
		OverallAccuracy:   metrics.Overall.Accuracy,
		OverallConfidence: metrics.Overall.MeanConfidence,
		OverallECE:        metrics.Overall.ECE,
		ByDomain:          metrics.ByDomain,
		Gates:             gates,
	}

	o.transition(PhaseDone)
	return &harness.RunOutput{Results: results, Summary: summary}, nil
}

// generate seeds one stream from the config seed, produces each domain's
// cases in the configured domain order, then shuffles the combined list with
// the same stream so domain never correlates with position.
func (o *Orchestrator) generate(domains []harness.Domain) ([]harness.TestCase, error) {
	stream := rng.New(o.cfg.Seed)
	var cases []harness.TestCase
	for _, domain := range domains {
		gen, err := generators.ForDomain(domain)
		if err != nil {
			return nil, err
		}
		count := domainCount(domain, o.cfg.Count())
		generated, err := gen(stream, count)
		if err != nil {
			return nil, fmt.Errorf("error generating %s cases: %w", domain, err)
		}
		logging.LogEvent("[GEN] domain=%s cases=%d", domain, len(generated))
		cases = append(cases, generated...)
	}
	return rng.Shuffle(stream, cases), nil
}

// domainCount applies the reduced, floored counts for the small-pool domains.
func domainCount(domain harness.Domain, requested int) int {
	switch domain {
	case harness.DomainRitual, harness.DomainSystemFacts:
		reduced := requested / reducedCountDivisor
		if reduced < minDomainCount {
			reduced = minDomainCount
		}
		return reduced
	default:
		return requested
	}
}

// invoke calls the model sequentially, one case at a time. A failed call
// yields an empty response and a captured error message; grading then
// produces the zero-score result.
func (o *Orchestrator) invoke(ctx context.Context, cases []harness.TestCase) ([]harness.TestResponse, map[int]string) {
	responses := make([]harness.TestResponse, len(cases))
	callErrors := map[int]string{}
	for i, c := range cases {
		logging.LogCase("call", c.ID, string(c.Domain), fmt.Sprintf("%d/%d", i+1, len(cases)))
		text, err := o.client.Call(ctx, c.Prompt)
		if err != nil {
			logging.LogCase("call-failed", c.ID, string(c.Domain), err)
			callErrors[i] = err.Error()
			responses[i] = harness.TestResponse{CaseID: c.ID}
			continue
		}
		responses[i] = harness.TestResponse{CaseID: c.ID, ResponseText: text}
	}
	return responses, callErrors
}
