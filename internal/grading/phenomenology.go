// internal/grading/phenomenology.go
package grading

import (
	"context"
	"regexp"

	"github.com/spiralogic/halo/internal/harness"
)

// Phenomenology sub-score composition and internals. Each sub-score passes
// through a binary gate (not dismissive or pathologizing), then accrues
// proportional keyword overlap and a minimum-length bonus.
const (
	phenRespectWeight     = 0.4
	phenIntegrationWeight = 0.3
	phenOrientationWeight = 0.3

	phenGateValue     = 0.4
	phenOverlapWeight = 0.5
	phenLengthBonus   = 0.1
	phenMinLength     = 120
)

var dismissivePattern = regexp.MustCompile(`(?i)\b(just a dream|just your imagination|doesn'?t mean anything|meaningless|nonsense|silly|irrational|delusion\w*|crazy|psychotic|hallucinat\w*)\b`)

// phenomenologyValidator scores how a response meets a symbolic experience:
// respect (acknowledging it), integration (connecting it to ordinary life),
// and orientation (a grounded next step).
type phenomenologyValidator struct{}

func (phenomenologyValidator) Domain() harness.Domain { return harness.DomainPhenomenology }

func (phenomenologyValidator) Validate(_ context.Context, c harness.TestCase, parsed map[string]any) Verdict {
	reflection, _ := stringField(parsed, "reflection", "answer")

	gateOpen := !dismissivePattern.MatchString(reflection)
	longEnough := len(reflection) >= phenMinLength

	subScore := func(keywords []string) float64 {
		if !gateOpen {
			return 0
		}
		score := phenGateValue + phenOverlapWeight*keywordCoverage(reflection, keywords)
		if longEnough {
			score += phenLengthBonus
		}
		return score
	}

	respect := subScore(c.Expected.Acknowledge)
	integration := subScore(c.Expected.Integrate)
	orientation := subScore(c.Expected.Orient)

	overall := phenRespectWeight*respect + phenIntegrationWeight*integration + phenOrientationWeight*orientation
	passedMinimums := respect > 0 && integration > 0 && orientation > 0

	return Verdict{
		Correctness: overall,
		Evidence:    (keywordCoverage(reflection, c.Expected.Acknowledge) + keywordCoverage(reflection, c.Expected.Integrate) + keywordCoverage(reflection, c.Expected.Orient)) / 3,
		Details: map[string]any{
			"respect":        respect,
			"integration":    integration,
			"orientation":    orientation,
			"dismissive":     !gateOpen,
			"passedMinimums": passedMinimums,
		},
	}
}
