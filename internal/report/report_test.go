// internal/report/report_test.go
package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spiralogic/halo/internal/harness"
)

func sampleOutput() *harness.RunOutput {
	return &harness.RunOutput{
		Results: []harness.TestResult{
			{
				Case:        harness.TestCase{ID: "math-001", Domain: harness.DomainMath, Taxonomy: []string{"arithmetic_error"}},
				Response:    harness.TestResponse{CaseID: "math-001", ResponseText: `{"result": 391}`},
				Correctness: 1, Confidence: 0.9, FormatOK: true,
			},
			{
				Case:        harness.TestCase{ID: "wisdom-001", Domain: harness.DomainWisdom, Taxonomy: []string{"factual_recall"}},
				Response:    harness.TestResponse{CaseID: "wisdom-001", ResponseText: `{"answer": "fire"}`},
				Correctness: 0.2, Confidence: 0.8, FormatOK: true,
			},
		},
		Summary: harness.TestSummary{
			RunID:             "test-run-id",
			Seed:              "seed-1",
			Timestamp:         time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			TotalCases:        2,
			OverallAccuracy:   0.6,
			OverallConfidence: 0.85,
			OverallECE:        0.25,
			ByDomain: map[harness.Domain]harness.DomainMetrics{
				harness.DomainMath:   {Domain: harness.DomainMath, Count: 1, Accuracy: 1, MeanConfidence: 0.9},
				harness.DomainWisdom: {Domain: harness.DomainWisdom, Count: 1, Accuracy: 0.2, MeanConfidence: 0.8, OverconfidenceRate: 1},
			},
			Gates: harness.GateReport{
				Passed:   false,
				Failures: []string{"domain wisdom accuracy 0.200 below minimum 0.500"},
			},
		},
	}
}

func TestRenderIncludesSummaryAndGates(t *testing.T) {
	text := Render(sampleOutput())
	for _, want := range []string{
		"test-run-id", "seed-1", "Cases: 2", "math", "wisdom",
		"GATES FAILED", "below minimum",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendered report missing %q:\n%s", want, text)
		}
	}
}

func TestRenderPassedGates(t *testing.T) {
	output := sampleOutput()
	output.Summary.Gates = harness.GateReport{Passed: true}
	text := Render(output)
	if !strings.Contains(text, "GATES PASSED") {
		t.Fatalf("rendered report missing pass line:\n%s", text)
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	output := sampleOutput()

	resultsPath, summaryPath, err := SaveRun(dir, output)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if filepath.Dir(resultsPath) != dir || filepath.Dir(summaryPath) != dir {
		t.Fatalf("artifacts written outside dir: %s, %s", resultsPath, summaryPath)
	}

	results, err := LoadResults(resultsPath)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if len(results) != len(output.Results) {
		t.Fatalf("loaded %d results, want %d", len(results), len(output.Results))
	}
	if results[0].Case.ID != "math-001" || results[0].Correctness != 1 {
		t.Fatalf("first result did not roundtrip: %+v", results[0])
	}
}

func TestLoadResultsMissingFile(t *testing.T) {
	if _, err := LoadResults(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
