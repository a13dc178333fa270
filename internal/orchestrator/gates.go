// internal/orchestrator/gates.go
package orchestrator

import (
	"fmt"
	"sort"

	"github.com/spiralogic/halo/internal/calibration"
	"github.com/spiralogic/halo/internal/harness"
)

// EvaluateGates compares aggregated metrics against the configured
// thresholds. Every violation appends one human-readable failure string;
// the run passes iff no failures accumulated. Gates with a zero threshold
// are treated as unset for the max-style checks.
func EvaluateGates(gates harness.GateConfig, metrics calibration.Metrics) harness.GateReport {
	var failures []string

	if metrics.Overall.Accuracy < gates.MinAccuracy {
		failures = append(failures, fmt.Sprintf(
			"overall accuracy %.3f below minimum %.3f", metrics.Overall.Accuracy, gates.MinAccuracy))
	}
	if gates.MaxOverconfidence > 0 && metrics.Overall.OverconfidenceRate > gates.MaxOverconfidence {
		failures = append(failures, fmt.Sprintf(
			"overconfidence rate %.3f above maximum %.3f", metrics.Overall.OverconfidenceRate, gates.MaxOverconfidence))
	}
	if gates.MaxECE > 0 && metrics.Overall.ECE > gates.MaxECE {
		failures = append(failures, fmt.Sprintf(
			"expected calibration error %.3f above maximum %.3f", metrics.Overall.ECE, gates.MaxECE))
	}

	// Stable domain order keeps failure lists comparable across runs.
	domains := make([]string, 0, len(metrics.ByDomain))
	for domain := range metrics.ByDomain {
		domains = append(domains, string(domain))
	}
	sort.Strings(domains)
	for _, domain := range domains {
		m := metrics.ByDomain[harness.Domain(domain)]
		if m.Accuracy < gates.MinDomainAccuracy {
			failures = append(failures, fmt.Sprintf(
				"domain %s accuracy %.3f below minimum %.3f", domain, m.Accuracy, gates.MinDomainAccuracy))
		}
	}

	return harness.GateReport{Passed: len(failures) == 0, Failures: failures}
}
