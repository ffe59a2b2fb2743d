package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli/report"
	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

var (
	hierPooling        poolingFlags
	hierOutput         outputFlags
	hierGroupingColumn string
	hierMaxPerPool     int
	hierFinalVolume    float64
	hierWatch          bool
)

var hierarchicalCmd = &cobra.Command{
	Use:   "hierarchical [sample-sheet]",
	Short: "Compute a two-stage sub-pool plan",
	Long: `Pools libraries into sub-pools, then sub-pools into a master pool.

Stage 1 groups libraries by the grouping column (project_id, barcode or
library_name), splitting groups larger than max-per-pool into numbered
chunks. Each sub-pool then enters stage 2 as one library whose molarity is
its total moles over total volume.`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchical,
}

func init() {
	hierPooling.register(hierarchicalCmd)
	hierOutput.register(hierarchicalCmd)
	hierarchicalCmd.Flags().StringVarP(&hierGroupingColumn, "grouping-column", "g", "", "column to group sub-pools by (default from settings)")
	hierarchicalCmd.Flags().IntVar(&hierMaxPerPool, "max-per-pool", 0, "maximum libraries per sub-pool (default from settings)")
	hierarchicalCmd.Flags().Float64Var(&hierFinalVolume, "final-volume", 0, "master pool volume target in µl (default from settings)")
	hierarchicalCmd.Flags().BoolVarP(&hierWatch, "watch", "w", false, "recompute whenever the sample sheet changes")
	rootCmd.AddCommand(hierarchicalCmd)
}

func runHierarchical(cmd *cobra.Command, args []string) error {
	if err := requirePooling(); err != nil {
		return err
	}
	if err := hierarchicalOnce(cmd, args[0]); err != nil {
		return err
	}
	if !hierWatch {
		return nil
	}
	return watchSheet(cmd, args[0], hierarchicalOnce)
}

func hierarchicalOnce(cmd *cobra.Command, path string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}
	settings.Pooling = hierPooling.apply(cmd, settings.Pooling)
	if cmd.Flags().Changed("grouping-column") {
		settings.Hierarchy.GroupingColumn = domain.GroupingColumn(hierGroupingColumn)
	}
	if cmd.Flags().Changed("max-per-pool") {
		settings.Hierarchy.MaxPerPool = hierMaxPerPool
	}
	if cmd.Flags().Changed("final-volume") {
		settings.FinalPoolVolumeUL = hierFinalVolume
	}

	libs, err := loadSheet(cmd, path)
	if err != nil {
		return err
	}

	result, err := poolingService.ComputeHierarchical(libs, settings)
	if err != nil {
		return fmt.Errorf("pooling failed: %w", err)
	}

	return hierOutput.emit(cmd, plan{
		id:        result.ID,
		workflow:  domain.WorkflowHierarchical,
		createdAt: result.CreatedAt,
		params:    result.Parameters,
		tables:    result.Tables(),
		value:     result,
		render: func(r *report.Report) {
			r.Title("Hierarchical pooling plan")
			r.Line("Grouped by %s into %d sub-pools; %d pipetting steps in total",
				result.GroupingColumn.Description(), result.TotalSubPools, result.TotalPipettingSteps)
			for _, st := range result.Stages {
				r.Subtitle(fmt.Sprintf("Stage %d: %s", st.Number, st.Description))
				r.Libraries(st.Volumes)
				for _, w := range st.Warnings {
					r.Warning("%s", w)
				}
			}
			r.Subtitle("Sub-pools")
			r.SubPools(result.SubPools)
		},
	})
}
