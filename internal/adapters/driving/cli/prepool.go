package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli/report"
	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

var (
	prePooling     poolingFlags
	prePoolOutput  outputFlags
	prePoolDefFile string
	prePoolWatch   bool
)

var prePoolCmd = &cobra.Command{
	Use:   "prepool [sample-sheet]",
	Short: "Pool user-defined groups before the final pool",
	Long: `Pools each group from the definitions file, then pools the groups
together with every library not in a group.

Definitions are TOML:

  [[prepool]]
  name = "Low input"
  libraries = ["L1", "L2", "L3"]

Each library may appear in at most one group.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrePool,
}

func init() {
	prePooling.register(prePoolCmd)
	prePoolOutput.register(prePoolCmd)
	prePoolCmd.Flags().StringVarP(&prePoolDefFile, "definitions", "d", "", "TOML file of pre-pool definitions (required)")
	prePoolCmd.Flags().BoolVarP(&prePoolWatch, "watch", "w", false, "recompute whenever the sample sheet changes")
	rootCmd.AddCommand(prePoolCmd)
}

func runPrePool(cmd *cobra.Command, args []string) error {
	if err := requirePooling(); err != nil {
		return err
	}
	if prePoolDefFile == "" {
		return errors.New("--definitions is required")
	}
	if err := prePoolOnce(cmd, args[0]); err != nil {
		return err
	}
	if !prePoolWatch {
		return nil
	}
	return watchSheet(cmd, args[0], prePoolOnce)
}

func prePoolOnce(cmd *cobra.Command, path string) error {
	if prePoolSource == nil {
		return errors.New("pre-pool source not configured")
	}
	settings, err := currentSettings()
	if err != nil {
		return err
	}
	params := prePooling.apply(cmd, settings.Pooling)

	defs, err := prePoolSource.ReadFile(prePoolDefFile)
	if err != nil {
		return fmt.Errorf("failed to read pre-pool definitions: %w", err)
	}
	libs, err := loadSheet(cmd, path)
	if err != nil {
		return err
	}

	result, err := poolingService.ComputeWithPrePools(libs, defs, params)
	if err != nil {
		return fmt.Errorf("pooling failed: %w", err)
	}

	return prePoolOutput.emit(cmd, plan{
		id:        result.ID,
		workflow:  domain.WorkflowPrePooling,
		createdAt: result.CreatedAt,
		params:    result.Parameters,
		tables:    result.Tables(),
		value:     result,
		render: func(r *report.Report) {
			r.Title("Pre-pooling plan")
			r.Line("%d libraries in %d pre-pools, %d standalone",
				result.LibrariesInPrePools, len(result.PrePools), result.StandaloneLibraries)
			r.Subtitle("Pre-pools")
			r.PrePools(result.PrePools)
			for _, pp := range result.PrePools {
				r.Subtitle(fmt.Sprintf("Pre-pool %s", pp.Definition.Name))
				r.Libraries(pp.Members)
			}
			r.Subtitle("Final pool")
			r.Libraries(result.FinalPool)
		},
	})
}
