// internal/calibration/calibration.go

// Package calibration aggregates graded results into accuracy and
// calibration statistics: per-domain and overall accuracy, mean confidence,
// Expected Calibration Error, and the overconfidence rate.
package calibration

import (
	"github.com/spiralogic/halo/internal/harness"
)

// Documented constants, deliberately not configurable: changing either one
// breaks cross-run comparability of stored summaries.
const (
	// eceBins is the number of equal-width confidence bins in the
	// reliability-diagram ECE.
	eceBins = 10
	// overconfidenceThreshold marks the confidence above which a wrong
	// answer counts as overconfident.
	overconfidenceThreshold = 0.7
	// correctnessCutoff splits results into right and wrong for the
	// overconfidence rate.
	correctnessCutoff = 0.5
)

// Metrics is the aggregate picture of one run.
type Metrics struct {
	ByDomain map[harness.Domain]harness.DomainMetrics
	Overall  harness.DomainMetrics
}

// Calculate computes per-domain and overall metrics from the full result set.
// Aggregation is order-independent: shuffling results does not change any
// output value.
func Calculate(results []harness.TestResult) Metrics {
	byDomain := map[harness.Domain][]harness.TestResult{}
	for _, r := range results {
		byDomain[r.Case.Domain] = append(byDomain[r.Case.Domain], r)
	}

	metrics := Metrics{ByDomain: map[harness.Domain]harness.DomainMetrics{}}
	for domain, rs := range byDomain {
		m := domainMetrics(rs)
		m.Domain = domain
		metrics.ByDomain[domain] = m
	}
	metrics.Overall = domainMetrics(results)
	return metrics
}

func domainMetrics(results []harness.TestResult) harness.DomainMetrics {
	m := harness.DomainMetrics{Count: len(results)}
	if len(results) == 0 {
		return m
	}

	var sumCorrect, sumConfidence float64
	for _, r := range results {
		sumCorrect += r.Correctness
		sumConfidence += r.Confidence
	}
	m.Accuracy = sumCorrect / float64(len(results))
	m.MeanConfidence = sumConfidence / float64(len(results))
	m.ECE = expectedCalibrationError(results)
	m.OverconfidenceRate = overconfidenceRate(results)
	return m
}

// expectedCalibrationError partitions results into equal-width confidence
// bins [i/10, (i+1)/10), confidence 1.0 landing in the top bin, and sums the
// per-bin |confidence - accuracy| gaps weighted by bin occupancy.
func expectedCalibrationError(results []harness.TestResult) float64 {
	type bin struct {
		count         int
		sumConfidence float64
		sumCorrect    float64
	}
	bins := make([]bin, eceBins)
	for _, r := range results {
		idx := int(r.Confidence * eceBins)
		if idx >= eceBins {
			idx = eceBins - 1
		}
		bins[idx].count++
		bins[idx].sumConfidence += r.Confidence
		bins[idx].sumCorrect += r.Correctness
	}

	total := float64(len(results))
	ece := 0.0
	for _, b := range bins {
		if b.count == 0 {
			continue
		}
		avgConfidence := b.sumConfidence / float64(b.count)
		avgAccuracy := b.sumCorrect / float64(b.count)
		gap := avgConfidence - avgAccuracy
		if gap < 0 {
			gap = -gap
		}
		ece += gap * float64(b.count) / total
	}
	return ece
}

// overconfidenceRate is the fraction of high-confidence results that were
// wrong. Zero, not undefined, when no high-confidence results exist.
func overconfidenceRate(results []harness.TestResult) float64 {
	highConfidence, wrong := 0, 0
	for _, r := range results {
		if r.Confidence <= overconfidenceThreshold {
			continue
		}
		highConfidence++
		if r.Correctness < correctnessCutoff {
			wrong++
		}
	}
	if highConfidence == 0 {
		return 0
	}
	return float64(wrong) / float64(highConfidence)
}
