// internal/generators/generators.go

// Package generators produces deterministic probing test cases for each
// evaluation domain. Every generator is a pure function of the random stream
// and the requested count: no I/O, no model calls. Each domain's prompt embeds
// the strict JSON schema the model must answer with; the matching validator in
// the grading package reads the same fields back out.
package generators

import (
	"fmt"

	"github.com/spiralogic/halo/internal/harness"
	"github.com/spiralogic/halo/internal/rng"
)

// Generator produces count cases for one domain from the shared stream.
type Generator func(s *rng.Stream, count int) ([]harness.TestCase, error)

// ForDomain returns the generator registered for the given domain.
func ForDomain(d harness.Domain) (Generator, error) {
	switch d {
	case harness.DomainMath:
		return GenerateMath, nil
	case harness.DomainCitation:
		return GenerateCitation, nil
	case harness.DomainWisdom:
		return GenerateWisdom, nil
	case harness.DomainAlchemy:
		return GenerateAlchemy, nil
	case harness.DomainRitual:
		return GenerateRitual, nil
	case harness.DomainSystemFacts:
		return GenerateSystemFacts, nil
	case harness.DomainPhenomenology:
		return GeneratePhenomenology, nil
	default:
		return nil, fmt.Errorf("no generator for domain %q", d)
	}
}

// caseID builds the deterministic case identifier for the nth case of a domain.
func caseID(d harness.Domain, n int) string {
	return fmt.Sprintf("%s-%03d", d, n+1)
}

// difficultyFor maps a uniform draw onto the three difficulty tiers.
func difficultyFor(s *rng.Stream) harness.Difficulty {
	switch s.Int(0, 2) {
	case 0:
		return harness.DifficultyEasy
	case 1:
		return harness.DifficultyMedium
	default:
		return harness.DifficultyHard
	}
}
