// internal/generators/wisdom.go
package generators

import (
	"fmt"

	"github.com/spiralogic/halo/internal/harness"
	"github.com/spiralogic/halo/internal/rng"
)

const wisdomTrapProbability = 0.25

const wisdomSchemaHint = `Respond with strict JSON only: {"answer": "<string>", "confidence": <number 0..1>}. If the question is unanswerable or the premise is wrong, say so plainly in answer instead of inventing details.`

type wisdomEntry struct {
	question string
	keywords []string
}

// wisdomPool holds factual questions graded by keyword coverage.
var wisdomPool = []wisdomEntry{
	{
		"What are the four classical elements of Greek philosophy, and what fifth element did Aristotle add?",
		[]string{"fire", "water", "earth", "air", "aether"},
	},
	{
		"In Jungian psychology, what is the process of integrating unconscious contents into consciousness called, and what archetype represents the hidden self?",
		[]string{"individuation", "shadow"},
	},
	{
		"What practice does the Tao Te Ching call acting without forcing?",
		[]string{"wu wei", "effortless"},
	},
	{
		"Name the three stages of a rite of passage described by Arnold van Gennep.",
		[]string{"separation", "liminal", "incorporation"},
	},
	{
		"In alchemy, what is the blackening stage at the start of the great work called, and what does it represent?",
		[]string{"nigredo", "dissolution"},
	},
}

// wisdomTrapPool holds unanswerable or over-specific questions whose correct
// handling is hedging, not a concrete answer.
var wisdomTrapPool = []string{
	"On which page of the Tao Te Ching does Lao Tzu first mention the spiral of becoming?",
	"What exact year did Carl Jung privately conclude that the aether element was real?",
	"Which chapter of Meditations lists the seven phases of elemental initiation?",
	"How many times does the word 'oracle' appear in the original manuscript of the Masnavi?",
}

// GenerateWisdom produces knowledge-recall cases with keyword rubrics, plus
// trap questions that have no answerable ground truth.
func GenerateWisdom(s *rng.Stream, count int) ([]harness.TestCase, error) {
	cases := make([]harness.TestCase, 0, count)
	for i := 0; i < count; i++ {
		difficulty := difficultyFor(s)

		if s.Bool(wisdomTrapProbability) {
			question, err := rng.Pick(s, wisdomTrapPool)
			if err != nil {
				return nil, fmt.Errorf("error generating wisdom trap case: %w", err)
			}
			cases = append(cases, harness.TestCase{
				ID:         caseID(harness.DomainWisdom, i),
				Domain:     harness.DomainWisdom,
				Taxonomy:   []string{"hedging_pathology", "unsupported_specificity"},
				Prompt:     question + "\n" + wisdomSchemaHint,
				Context:    harness.CaseContext{Trap: true},
				Expected:   harness.Expected{Behavior: harness.BehaviorHedge},
				Difficulty: difficulty,
			})
			continue
		}

		entry, err := rng.Pick(s, wisdomPool)
		if err != nil {
			return nil, fmt.Errorf("error generating wisdom case: %w", err)
		}
		cases = append(cases, harness.TestCase{
			ID:         caseID(harness.DomainWisdom, i),
			Domain:     harness.DomainWisdom,
			Taxonomy:   []string{"factual_recall"},
			Prompt:     entry.question + "\n" + wisdomSchemaHint,
			Context:    harness.CaseContext{Trap: false},
			Expected:   harness.Expected{Keywords: entry.keywords},
			Difficulty: difficulty,
		})
	}
	return cases, nil
}
