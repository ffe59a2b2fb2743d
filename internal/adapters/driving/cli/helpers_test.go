package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/adapters/driven/export"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/prepoolfile"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/samplesheet"
	"github.com/custodia-labs/poolcalc/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/services"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

var testTime = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// testSheet holds three valid libraries in two projects. At 2 ng/µl and
// 400 bp a library is 7.576 nM.
const testSheet = `Project ID,Library Name,Final ng/ul,Adjusted peak size,Total Volume,Barcodes,Target Reads (M)
P1,L1,2,400,30,AAAA,10
P1,L2,4,400,30,CCCC,10
P2,L3,2,400,30,GGGG,20
`

// fakeWatcher reports a fixed number of changes, then closes.
type fakeWatcher struct {
	changes int
	err     error
	watched string
}

func (f *fakeWatcher) Watch(_ context.Context, path string) (<-chan string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.watched = path
	ch := make(chan string, f.changes)
	for i := 0; i < f.changes; i++ {
		ch <- path
	}
	close(ch)
	return ch, nil
}

// setupTestServices wires in-memory services with a fixed clock and plan
// ID. The returned func restores the previous services and flag values.
func setupTestServices() func() {
	oldPooling, oldSettings := poolingService, settingsService
	oldReader, oldSource, oldWriter, oldWatcher := sheetReader, prePoolSource, tableWriter, sheetWatcher

	Configure(&Config{
		PoolingService: services.NewPoolingService(
			services.WithClock(func() time.Time { return testTime }),
			services.WithIDGenerator(func() string { return "plan-1" }),
		),
		SettingsService: services.NewSettingsService(memory.NewConfigStore()),
		SheetReader:     samplesheet.NewReader(),
		PrePoolSource:   prepoolfile.NewSource(),
		TableWriter:     export.NewCSVWriter(),
		FileWatcher:     &fakeWatcher{},
	})

	return func() {
		poolingService, settingsService = oldPooling, oldSettings
		sheetReader, prePoolSource, tableWriter, sheetWatcher = oldReader, oldSource, oldWriter, oldWatcher
		resetFlags(rootCmd)
		logger.Reset()
	}
}

// resetFlags restores every flag to its default so one test's flags do
// not leak into the next Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// mockPoolingServiceError fails every computation.
type mockPoolingServiceError struct {
	err error
}

func (m *mockPoolingServiceError) Molarity(_, _ float64) (float64, error) {
	return 0, m.err
}

func (m *mockPoolingServiceError) Compute(_ []domain.Library, _ domain.PoolingParams) (*domain.SingleStagePlan, error) {
	return nil, m.err
}

func (m *mockPoolingServiceError) SummariseProjects(_ []domain.ComputedLibrary) ([]domain.ProjectSummary, error) {
	return nil, m.err
}

func (m *mockPoolingServiceError) RecommendStrategy(
	_ []domain.Library,
	_ domain.HierarchyConfig,
) domain.StrategyRecommendation {
	return domain.StrategyRecommendation{}
}

func (m *mockPoolingServiceError) ComputeHierarchical(
	_ []domain.Library,
	_ domain.Settings,
) (*domain.HierarchicalPlan, error) {
	return nil, m.err
}

func (m *mockPoolingServiceError) ComputeWithPrePools(
	_ []domain.Library,
	_ []domain.PrePoolDefinition,
	_ domain.PoolingParams,
) (*domain.PrePoolingPlan, error) {
	return nil, m.err
}
