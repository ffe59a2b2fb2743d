package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/cli/report"
	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// poolingFlags are the engine parameters every compute command accepts.
// Flags left unset fall back to the stored settings.
type poolingFlags struct {
	scalingFactor float64
	minVolume     float64
	maxVolume     float64
	totalReads    float64
}

func (f *poolingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.scalingFactor, "scaling-factor", 0, "stock volume scaling factor (default from settings)")
	cmd.Flags().Float64Var(&f.minVolume, "min-volume", 0, "minimum pipettable volume in µl (default from settings)")
	cmd.Flags().Float64Var(&f.maxVolume, "max-volume", 0, "maximum volume per library in µl")
	cmd.Flags().Float64Var(&f.totalReads, "total-reads", 0, "total sequencing reads in millions; enables expected reads")
}

func (f *poolingFlags) apply(cmd *cobra.Command, p domain.PoolingParams) domain.PoolingParams {
	flags := cmd.Flags()
	if flags.Changed("scaling-factor") {
		p.ScalingFactor = f.scalingFactor
	}
	if flags.Changed("min-volume") {
		p.MinVolumeUL = f.minVolume
	}
	if flags.Changed("max-volume") {
		p.MaxVolumeUL = domain.Float(f.maxVolume)
	}
	if flags.Changed("total-reads") {
		p.TotalReadsM = domain.Float(f.totalReads)
	}
	return p
}

// outputFlags select how a plan is emitted.
type outputFlags struct {
	json   bool
	dir    string
	prefix string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "output the plan as JSON")
	cmd.Flags().StringVarP(&f.dir, "output", "o", "", "directory to export CSV tables into")
	cmd.Flags().StringVar(&f.prefix, "prefix", domain.DefaultExportPrefix, "file name prefix for exported tables")
}

// plan is what every workflow hands to emit.
type plan struct {
	id        string
	workflow  string
	createdAt time.Time
	params    map[string]any
	tables    []domain.Table
	value     any
	render    func(r *report.Report)
}

// emit writes the plan as JSON or a report, then exports CSV tables when
// an output directory was given.
func (f *outputFlags) emit(cmd *cobra.Command, p plan) error {
	out := cmd.OutOrStdout()
	if f.json {
		if err := writeJSON(out, p.value); err != nil {
			return err
		}
	} else {
		p.render(report.New(out))
	}

	if f.dir == "" {
		return nil
	}
	if tableWriter == nil {
		return errors.New("table writer not configured")
	}

	meta := domain.PlanMetadata{
		PlanID:      p.id,
		Workflow:    p.workflow,
		GeneratedAt: p.createdAt,
		AppName:     "poolcalc",
		Version:     version,
		Parameters:  p.params,
	}
	tables := append(p.tables, meta.Table())
	paths, err := tableWriter.WriteDir(f.dir, domain.ExportName(f.prefix, p.createdAt), tables)
	if err != nil {
		return fmt.Errorf("failed to export plan: %w", err)
	}
	if !f.json {
		for _, path := range paths {
			cmd.Printf("Wrote %s\n", path)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// currentSettings returns stored settings, or defaults when no settings
// service is configured.
func currentSettings() (domain.Settings, error) {
	if settingsService == nil {
		return domain.DefaultSettings(), nil
	}
	s, err := settingsService.Get()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return *s, nil
}

// loadSheet reads and validates a sample sheet. Validation messages go to
// stderr; any error stops the command.
func loadSheet(cmd *cobra.Command, path string) ([]domain.Library, error) {
	if sheetReader == nil {
		return nil, errors.New("sample sheet reader not configured")
	}

	libs, result, err := sheetReader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample sheet: %w", err)
	}
	if result != nil && len(result.Errors)+len(result.Warnings) > 0 {
		report.New(cmd.ErrOrStderr()).Validation(result)
	}
	if result != nil && !result.IsValid() {
		return nil, fmt.Errorf("sample sheet %s has %d error(s): %w", path, len(result.Errors), domain.ErrInvalidInput)
	}
	return libs, nil
}

func requirePooling() error {
	if poolingService == nil {
		return errors.New("pooling service not configured")
	}
	return nil
}
