// internal/cli/replay.go
package halo

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spiralogic/halo/internal/calibration"
	"github.com/spiralogic/halo/internal/harness"
	"github.com/spiralogic/halo/internal/orchestrator"
	"github.com/spiralogic/halo/internal/report"
)

// replayCmd re-grades a saved results file without calling the model. Graded
// scores are a pure function of case plus response, so a replay of unchanged
// inputs reproduces the original scores exactly.
var replayCmd = &cobra.Command{
	Use:   "replay <results.jsonl>",
	Short: "Re-grade a saved results file and re-evaluate the gates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}
		path := args[0]
		log.Printf("replay command called: %s", path)

		stored, err := report.LoadResults(path)
		if err != nil {
			return fmt.Errorf("error loading results: %w", err)
		}
		if len(stored) == 0 {
			return fmt.Errorf("no results found in %q", path)
		}

		engine := newEngine(cfg)
		results := make([]harness.TestResult, 0, len(stored))
		for _, prior := range stored {
			regraded := engine.Grade(cmd.Context(), prior.Case, prior.Response)
			if prior.Error != "" {
				regraded.Error = prior.Error
			}
			results = append(results, regraded)
		}

		metrics := calibration.Calculate(results)
		gates := orchestrator.EvaluateGates(cfg.Gates, metrics)

		runID := strings.TrimSuffix(filepath.Base(path), ".results.jsonl")
		summary := harness.TestSummary{
			RunID:             runID,
			Seed:              cfg.Seed,
			Timestamp:         time.Now().UTC(),
			TotalCases:        len(results),
			OverallAccuracy:   metrics.Overall.Accuracy,
			OverallConfidence: metrics.Overall.MeanConfidence,
			OverallECE:        metrics.Overall.ECE,
			ByDomain:          metrics.ByDomain,
			Gates:             gates,
		}

		output := &harness.RunOutput{Results: results, Summary: summary}
		fmt.Println(report.Render(output))

		if !gates.Passed {
			return fmt.Errorf("quality gates failed: %d violation(s)", len(gates.Failures))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
