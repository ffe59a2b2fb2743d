package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli/report"
	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

var (
	computePooling poolingFlags
	computeOutput  outputFlags
	computeWatch   bool
)

var computeCmd = &cobra.Command{
	Use:   "compute [sample-sheet]",
	Short: "Compute single-stage pooling volumes",
	Long: `Computes the volume of every library to pipette directly into one pool.

Stock volume = scaling factor / molarity (nM) * target reads (M). Stock
volumes below the dilution thresholds get a 5x or 10x pre-dilution
recommendation. Rows are flagged, never dropped, when the volume is below
the minimum, above the maximum, or more than is available.

The sample sheet is CSV, or tab separated for .tsv and .txt files.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

func init() {
	computePooling.register(computeCmd)
	computeOutput.register(computeCmd)
	computeCmd.Flags().BoolVarP(&computeWatch, "watch", "w", false, "recompute whenever the sample sheet changes")
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	if err := requirePooling(); err != nil {
		return err
	}
	path := args[0]

	if err := computeOnce(cmd, path); err != nil {
		return err
	}
	if !computeWatch {
		return nil
	}
	return watchSheet(cmd, path, computeOnce)
}

func computeOnce(cmd *cobra.Command, path string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}
	params := computePooling.apply(cmd, settings.Pooling)

	libs, err := loadSheet(cmd, path)
	if err != nil {
		return err
	}

	result, err := poolingService.Compute(libs, params)
	if err != nil {
		return fmt.Errorf("pooling failed: %w", err)
	}

	return computeOutput.emit(cmd, plan{
		id:        result.ID,
		workflow:  domain.WorkflowSingleStage,
		createdAt: result.CreatedAt,
		params:    result.Parameters,
		tables:    result.Tables(),
		value:     result,
		render: func(r *report.Report) {
			r.Title("Single-stage pooling plan")
			r.Libraries(result.Libraries)
			r.Subtitle("Projects")
			r.Projects(result.Projects)
			r.Subtitle("Summary")
			r.Summary(result.Summary)
		},
	})
}

// watchSheet re-runs fn each time the sample sheet changes until the
// command's context is cancelled. Failed runs are reported and watching
// continues.
func watchSheet(cmd *cobra.Command, path string, fn func(*cobra.Command, string) error) error {
	if sheetWatcher == nil {
		return errors.New("file watcher not configured")
	}

	changes, err := sheetWatcher.Watch(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to watch sample sheet: %w", err)
	}
	cmd.PrintErrf("Watching %s for changes (Ctrl+C to stop)\n", path)

	for range changes {
		cmd.PrintErrf("\n%s changed, recomputing\n", path)
		if err := fn(cmd, path); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	}
	return nil
}
