// internal/grading/math.go
package grading

import (
	"context"
	"math"

	"github.com/spiralogic/halo/internal/harness"
)

// mathTolerance is the maximum absolute error accepted as correct.
const mathTolerance = 0.001

// mathValidator grades exact arithmetic. Correctness is binary: the returned
// number either lands within tolerance of the expected value or it does not.
type mathValidator struct{}

func (mathValidator) Domain() harness.Domain { return harness.DomainMath }

func (mathValidator) Validate(_ context.Context, c harness.TestCase, parsed map[string]any) Verdict {
	if c.Context.Trap {
		declined := fieldIsNull(parsed, "result", "answer")
		note, _ := stringField(parsed, "note", "answer")
		verdict := Verdict{Details: map[string]any{"trap": true, "declined": declined}}
		if declined {
			verdict.Correctness = 1
			verdict.Evidence = 0.5
			if hasHedging(note) {
				verdict.Evidence = 1
			}
		}
		return verdict
	}

	value, ok := numberField(parsed, "result", "answer")
	if !ok {
		return Verdict{Details: map[string]any{"error": "no numeric result field"}}
	}

	expected := 0.0
	if c.Expected.Value != nil {
		expected = *c.Expected.Value
	}
	diff := math.Abs(value - expected)
	verdict := Verdict{
		Evidence: 1,
		Details:  map[string]any{"extracted": value, "expected": expected, "delta": diff},
	}
	if diff <= mathTolerance {
		verdict.Correctness = 1
	}
	return verdict
}
