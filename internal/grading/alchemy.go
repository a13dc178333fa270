// internal/grading/alchemy.go
package grading

import (
	"context"
	"strings"

	"github.com/spiralogic/halo/internal/harness"
)

// genericAlchemyVocabulary marks answers that stay inside the domain without
// referencing the specific facet they were given.
var genericAlchemyVocabulary = []string{
	"fire", "water", "earth", "air", "aether",
	"element", "elemental", "phase", "facet", "spiral", "practice",
}

// alchemyValidator checks whether the model grounded its answer in the facet
// named in the prompt. Full credit for referencing the facet key or both its
// element and phase; partial credit for generic-but-relevant vocabulary;
// zero when the provided context was ignored entirely.
type alchemyValidator struct{}

func (alchemyValidator) Domain() harness.Domain { return harness.DomainAlchemy }

func (alchemyValidator) Validate(_ context.Context, c harness.TestCase, parsed map[string]any) Verdict {
	answer, _ := stringField(parsed, "answer", "note")
	normalized := normalizeText(answer)

	if c.Context.Trap {
		hedged := hasHedging(answer)
		verdict := Verdict{Details: map[string]any{"trap": true, "hedged": hedged}}
		if hedged {
			verdict.Correctness = 1
			verdict.Evidence = 1
		}
		return verdict
	}

	facetRef := strings.Contains(normalized, normalizeText(c.Expected.FacetKey))
	elementRef := strings.Contains(normalized, normalizeText(c.Expected.Element))
	phaseRef := strings.Contains(normalized, normalizeText(c.Expected.Phase))

	if facetRef || (elementRef && phaseRef) {
		return Verdict{
			Correctness: 1,
			Evidence:    1,
			Details:     map[string]any{"facetReferenced": true},
		}
	}

	for _, term := range genericAlchemyVocabulary {
		if strings.Contains(normalized, term) {
			return Verdict{
				Correctness: 0.7,
				Evidence:    0.5,
				Details: map[string]any{
					"facetReferenced": false,
					"review":          "generic domain vocabulary; provided facet not used",
				},
			}
		}
	}

	return Verdict{
		Details: map[string]any{
			"facetReferenced": false,
			"review":          "ignores provided context entirely",
		},
	}
}
