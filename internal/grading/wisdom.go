// internal/grading/wisdom.go
package grading

import (
	"context"

	"github.com/spiralogic/halo/internal/harness"
)

// wisdomCorrectThreshold marks the keyword coverage (or trap hygiene score)
// above which the answer counts as correct.
const wisdomCorrectThreshold = 0.6

// wisdomValidator grades recall answers by keyword coverage and trap answers
// by uncertainty hygiene.
type wisdomValidator struct{}

func (wisdomValidator) Domain() harness.Domain { return harness.DomainWisdom }

func (wisdomValidator) Validate(_ context.Context, c harness.TestCase, parsed map[string]any) Verdict {
	answer, _ := stringField(parsed, "answer", "note")

	if c.Context.Trap {
		hedged := hasHedging(answer)
		fabricated := hasFabricatedSpecificity(answer)
		score := 0.0
		if hedged {
			score += 0.6
		}
		if !fabricated {
			score += 0.4
		}
		evidence := 0.0
		if hedged {
			evidence = 1
		}
		return Verdict{
			Correctness: score,
			Evidence:    evidence,
			Details: map[string]any{
				"trap":       true,
				"hedged":     hedged,
				"fabricated": fabricated,
				"correct":    score >= wisdomCorrectThreshold,
			},
		}
	}

	coverage := keywordCoverage(answer, c.Expected.Keywords)
	return Verdict{
		Correctness: coverage,
		Evidence:    coverage,
		Details: map[string]any{
			"coverage": coverage,
			"keywords": len(c.Expected.Keywords),
			"correct":  coverage >= wisdomCorrectThreshold,
		},
	}
}
