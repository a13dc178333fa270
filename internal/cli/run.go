// internal/cli/run.go
package halo

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spiralogic/halo/internal/appconfig"
	"github.com/spiralogic/halo/internal/grading"
	"github.com/spiralogic/halo/internal/logging"
	"github.com/spiralogic/halo/internal/orchestrator"
	"github.com/spiralogic/halo/internal/providerfactory"
	"github.com/spiralogic/halo/internal/report"
	"github.com/spiralogic/halo/internal/verify"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full evaluation suite against the configured model",
	Long: `Run generates the seeded test suite, sends every case to the configured
model host, grades the responses, aggregates calibration metrics, evaluates the
quality gates, and writes the run artifacts to the results directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}
		log.Printf("run command called: seed=%q model=%s/%s", cfg.Seed, cfg.Model.Type, cfg.Model.Model)

		client, err := providerfactory.NewModelClient(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		orch := orchestrator.New(cfg, client, newEngine(cfg))
		output, err := orch.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("error running evaluation: %w", err)
		}

		resultsPath, summaryPath, err := report.SaveRun(cfg.ResultsDirPath(), output)
		if err != nil {
			return fmt.Errorf("error saving run artifacts: %w", err)
		}
		logging.LogEvent("[RUN] saved results=%s summary=%s", resultsPath, summaryPath)

		fmt.Println(report.Render(output))

		if !output.Summary.Gates.Passed {
			return fmt.Errorf("quality gates failed: %d violation(s)", len(output.Summary.Gates.Failures))
		}
		return nil
	},
}

// newEngine wires the grading engine with the configured citation verifier.
// Verification is optional; grading works fully offline when it is disabled.
func newEngine(cfg *appconfig.Config) *grading.Engine {
	var verifier verify.Verifier = verify.Disabled{}
	if cfg.Verification.Enabled {
		verifier = verify.NewClient(cfg.Verification.BaseURL, cfg.VerificationTTL())
	}
	return grading.NewEngine(verifier)
}

func init() {
	rootCmd.AddCommand(runCmd)
}
