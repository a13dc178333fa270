// internal/cli/show_config.go
package halo

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd prints the merged configuration (config file plus flags) so a
// run's inputs can be inspected before spending model calls.
var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Show the merged configuration",
	Long:  `Show the merged configuration ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}

		file := viper.ConfigFileUsed()
		if file == "" {
			file = cfg.ConfigPath
		}
		fmt.Printf("Config file: %s\n\n", file)

		if cfg.Debug {
			// Full structured dump, secrets and all, when debugging.
			pp.Println(cfg)
			return nil
		}

		domains := "all"
		if len(cfg.Domains) > 0 {
			domains = strings.Join(cfg.Domains, ", ")
		}

		fmt.Println("Current configuration:")
		fmt.Printf("  Seed:             %s\n", cfg.Seed)
		fmt.Printf("  Domains:          %s\n", domains)
		fmt.Printf("  Count Per Domain: %d\n", cfg.Count())
		fmt.Printf("  Model Host:       %s (%s)\n", cfg.Model.Name, cfg.Model.Type)
		fmt.Printf("  Model:            %s\n", cfg.Model.Model)
		fmt.Printf("  Request Timeout:  %s\n", cfg.RequestTimeout())
		fmt.Printf("  Verification:     %v\n", cfg.Verification.Enabled)
		fmt.Printf("  Results Dir:      %s\n", cfg.ResultsDirPath())
		fmt.Printf("  Log File:         %s\n", cfg.LogFilePath())
		fmt.Printf("  Debug:            %v\n", cfg.Debug)
		fmt.Println("\nGates:")
		fmt.Printf("  Min Accuracy:        %.2f\n", cfg.Gates.MinAccuracy)
		fmt.Printf("  Min Domain Accuracy: %.2f\n", cfg.Gates.MinDomainAccuracy)
		fmt.Printf("  Max Overconfidence:  %.2f\n", cfg.Gates.MaxOverconfidence)
		fmt.Printf("  Max ECE:             %.2f\n", cfg.Gates.MaxECE)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
