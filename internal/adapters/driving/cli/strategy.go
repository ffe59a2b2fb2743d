package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli/report"
)

var (
	strategyMaxPerPool int
	strategyJSON       bool
)

var strategyCmd = &cobra.Command{
	Use:   "strategy [sample-sheet]",
	Short: "Recommend single-stage or hierarchical pooling",
	Long: `Recommends a pooling workflow for the sample sheet.

Up to max-per-pool libraries are pooled in a single stage. Larger sets are
pooled hierarchically, grouped by a column with enough distinct values.
The recommendation is advisory; every workflow can still be run directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runStrategy,
}

func init() {
	strategyCmd.Flags().IntVar(&strategyMaxPerPool, "max-per-pool", 0, "maximum libraries per pool (default from settings)")
	strategyCmd.Flags().BoolVar(&strategyJSON, "json", false, "output the recommendation as JSON")
	rootCmd.AddCommand(strategyCmd)
}

func runStrategy(cmd *cobra.Command, args []string) error {
	if err := requirePooling(); err != nil {
		return err
	}
	settings, err := currentSettings()
	if err != nil {
		return err
	}
	cfg := settings.Hierarchy
	if cmd.Flags().Changed("max-per-pool") {
		cfg.MaxPerPool = strategyMaxPerPool
	}

	libs, err := loadSheet(cmd, args[0])
	if err != nil {
		return err
	}

	rec := poolingService.RecommendStrategy(libs, cfg)
	if strategyJSON {
		return writeJSON(cmd.OutOrStdout(), rec)
	}

	r := report.New(cmd.OutOrStdout())
	r.Title("Pooling strategy")
	r.Strategy(rec)
	return nil
}
