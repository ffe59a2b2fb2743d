// Package cli provides the poolcalc command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driving"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired in by main.
var (
	poolingService  driving.PoolingService
	settingsService driving.SettingsService
	sheetReader     driven.SampleSheetReader
	prePoolSource   driven.PrePoolSource
	tableWriter     driven.TableWriter
	sheetWatcher    driven.FileWatcher
)

// Config holds the services the commands run against.
type Config struct {
	PoolingService  driving.PoolingService
	SettingsService driving.SettingsService
	SheetReader     driven.SampleSheetReader
	PrePoolSource   driven.PrePoolSource
	TableWriter     driven.TableWriter
	FileWatcher     driven.FileWatcher
	Version         string
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "poolcalc",
	Short: "Calculate pipetting volumes for pooling sequencing libraries",
	Long: `poolcalc computes how much of each sequencing library to pipette so that
the final pool yields the desired share of reads per library.

Workflows:
  compute       single-stage pooling of every library
  hierarchical  libraries -> sub-pools -> master pool
  prepool       user-defined groups -> final pool`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print calculation details to stderr")
}

// Configure sets the services used by every command.
func Configure(cfg *Config) {
	poolingService = cfg.PoolingService
	settingsService = cfg.SettingsService
	sheetReader = cfg.SheetReader
	prePoolSource = cfg.PrePoolSource
	tableWriter = cfg.TableWriter
	sheetWatcher = cfg.FileWatcher
	if cfg.Version != "" {
		version = cfg.Version
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
