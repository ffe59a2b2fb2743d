package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

func TestComputeCmd_Use(t *testing.T) {
	assert.Equal(t, "compute [sample-sheet]", computeCmd.Use)
	assert.Contains(t, computeCmd.Long, "scaling factor")
}

func TestComputeCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"scaling-factor", "min-volume", "max-volume", "total-reads", "json", "output", "prefix", "watch"} {
		assert.NotNil(t, computeCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "o", computeCmd.Flags().Lookup("output").Shorthand)
	assert.Equal(t, "pooling_plan", computeCmd.Flags().Lookup("prefix").DefValue)
}

func TestComputeCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("compute")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestComputeCmd_RendersReport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.csv", testSheet)

	out, _, err := execute("compute", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Single-stage pooling plan")
	assert.Contains(t, out, "L1")
	assert.Contains(t, out, "L3")
	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, "Total final volume")
	assert.Contains(t, out, "Warning: L1: Pre-dilute 10x recommended")
}

func TestComputeCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.csv", testSheet)

	out, _, err := execute("compute", "--json", path)
	require.NoError(t, err)

	var plan domain.SingleStagePlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "plan-1", plan.ID)
	require.Len(t, plan.Libraries, 3)
	assert.Equal(t, 10, plan.Libraries[0].PreDiluteFactor)
	assert.True(t, plan.Libraries[0].HasFlag(domain.FlagPreDilution))
	assert.Len(t, plan.Projects, 2)
	assert.Equal(t, 0.1, plan.Parameters["scaling_factor"])
	assert.Contains(t, out, `"message": "Pre-dilute 10x recommended`)
}

func TestComputeCmd_FlagsOverrideSettings(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.csv", testSheet)
	require.NoError(t, settingsService.Set("pooling.min_volume_ul", "0.5"))

	out, _, err := execute("compute", "--json", "--scaling-factor", "1", "--total-reads", "400", path)
	require.NoError(t, err)

	var plan domain.SingleStagePlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 1.0, plan.Parameters["scaling_factor"])
	assert.Equal(t, 0.5, plan.Parameters["min_volume_ul"])
	assert.Equal(t, 400.0, plan.Parameters["total_reads_m"])
	assert.Equal(t, 1, plan.Libraries[0].PreDiluteFactor)
	require.NotNil(t, plan.Libraries[0].ExpectedReadsM)
}

func TestComputeCmd_ExportsCSV(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.csv", testSheet)
	dir := t.TempDir()

	out, _, err := execute("compute", "--output", dir, path)

	require.NoError(t, err)
	for _, table := range []string{"PoolingPlan_Libraries", "PoolingPlan_Projects", "Metadata"} {
		file := filepath.Join(dir, "pooling_plan_20240501_093000_"+table+".csv")
		assert.FileExists(t, file)
		assert.Contains(t, out, "Wrote "+file)
	}

	meta, err := os.ReadFile(filepath.Join(dir, "pooling_plan_20240501_093000_Metadata.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), "Workflow,single_stage")
	assert.Contains(t, string(meta), "Plan ID,plan-1")
	assert.Contains(t, string(meta), "max_volume_ul,None")
}

func TestComputeCmd_InvalidSheet(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.csv", "Project ID,Library Name\nP1,L1\n")

	_, errOut, err := execute("compute", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, errOut, "Missing required column: Final ng/ul")
}

func TestComputeCmd_InvalidParameter(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.csv", testSheet)

	_, _, err := execute("compute", "--scaling-factor", "-1", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestComputeCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	poolingService = &mockPoolingServiceError{err: errors.New("engine down")}
	path := writeFile(t, "sheet.csv", testSheet)

	_, _, err := execute("compute", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pooling failed: engine down")
}

func TestComputeCmd_NilService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	poolingService = nil

	_, _, err := execute("compute", "sheet.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pooling service not configured")
}

func TestComputeCmd_Watch(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	watcher := &fakeWatcher{changes: 2}
	sheetWatcher = watcher
	path := writeFile(t, "sheet.csv", testSheet)

	out, errOut, err := execute("compute", "--watch", path)

	require.NoError(t, err)
	assert.Equal(t, path, watcher.watched)
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("Single-stage pooling plan")))
	assert.Contains(t, errOut, "Watching "+path)
	assert.Contains(t, errOut, "changed, recomputing")
}

// flakyReader fails every read after the first failAfter.
type flakyReader struct {
	inner     driven.SampleSheetReader
	failAfter int
	calls     int
}

func (f *flakyReader) Read(r io.Reader) ([]domain.Library, *domain.ValidationResult, error) {
	return f.inner.Read(r)
}

func (f *flakyReader) ReadFile(path string) ([]domain.Library, *domain.ValidationResult, error) {
	f.calls++
	if f.calls > f.failAfter {
		return nil, nil, errors.New("disk gone")
	}
	return f.inner.ReadFile(path)
}

func TestComputeCmd_WatchContinuesAfterFailedRun(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sheetWatcher = &fakeWatcher{changes: 1}
	path := writeFile(t, "sheet.csv", testSheet)

	reader := &flakyReader{inner: sheetReader, failAfter: 1}
	sheetReader = reader

	_, errOut, err := execute("compute", "--watch", path)

	require.NoError(t, err)
	assert.Equal(t, 2, reader.calls)
	assert.Contains(t, errOut, "Error: failed to read sample sheet: disk gone")
}

func TestComputeCmd_WatchError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sheetWatcher = &fakeWatcher{err: errors.New("inotify limit")}
	path := writeFile(t, "sheet.csv", testSheet)

	_, _, err := execute("compute", "--watch", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch sample sheet: inotify limit")
}

func TestComputeCmd_Verbose(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	path := writeFile(t, "sheet.csv", testSheet)

	_, _, err := execute("compute", "--verbose", path)

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "=== Single-stage pooling ===")
}
