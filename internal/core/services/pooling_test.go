package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

func newTestPoolingService() *PoolingService {
	return NewPoolingService(
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "plan-fixed" }),
	)
}

func TestNewPoolingService_Defaults(t *testing.T) {
	s := NewPoolingService()

	plan, err := s.Compute([]domain.Library{lib("P1", "L1", 10, 10)}, domain.DefaultPoolingParams())

	require.NoError(t, err)
	_, err = uuid.Parse(plan.ID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), plan.CreatedAt, time.Minute)
}

func TestPoolingService_Molarity(t *testing.T) {
	nm, err := newTestPoolingService().Molarity(33, 500)

	require.NoError(t, err)
	assert.InDelta(t, 100.0, nm, 1e-9)
}

func TestPoolingService_Compute(t *testing.T) {
	libs := []domain.Library{
		lib("P1", "A", 10, 10),
		lib("P2", "B", 10, 30),
	}
	params := domain.DefaultPoolingParams()
	params.TotalReadsM = domain.Float(200)

	plan, err := newTestPoolingService().Compute(libs, params)

	require.NoError(t, err)
	assert.Equal(t, "plan-fixed", plan.ID)
	assert.Equal(t, fixedTime, plan.CreatedAt)
	require.Len(t, plan.Libraries, 2)
	require.Len(t, plan.Projects, 2)
	assert.Equal(t, "P1", plan.Projects[0].ProjectID)
	assert.InDelta(t, 0.25, plan.Libraries[0].PoolFraction, 1e-9)
	assert.InDelta(t, 150.0, *plan.Libraries[1].ExpectedReadsM, 1e-9)
	assert.Equal(t, 2, plan.Summary.Libraries)
	assert.Equal(t, 200.0, plan.Parameters["total_reads_m"])
	assert.Len(t, plan.Tables(), 2)
}

func TestPoolingService_Compute_Errors(t *testing.T) {
	s := newTestPoolingService()

	_, err := s.Compute(nil, domain.DefaultPoolingParams())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := lib("P1", "bad", 10, 10)
	bad.FragmentSizeBP = 0
	_, err = s.Compute([]domain.Library{bad}, domain.DefaultPoolingParams())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	params := domain.DefaultPoolingParams()
	params.ScalingFactor = 0
	_, err = s.Compute([]domain.Library{lib("P1", "A", 10, 10)}, params)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestPoolingService_SummariseProjects(t *testing.T) {
	s := newTestPoolingService()
	plan, err := s.Compute([]domain.Library{lib("P1", "A", 10, 10), lib("P1", "B", 10, 10)}, domain.DefaultPoolingParams())
	require.NoError(t, err)

	summaries, err := s.SummariseProjects(plan.Libraries)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].LibraryCount)
}

func TestPoolingService_RecommendStrategy(t *testing.T) {
	rec := newTestPoolingService().RecommendStrategy(libsAcrossProjects(10, 2), domain.DefaultHierarchyConfig())

	assert.Equal(t, domain.StrategySingleStage, rec.Strategy)
}

func TestPoolingService_ComputeHierarchical(t *testing.T) {
	libs := make([]domain.Library, 0, 6)
	for _, r := range sixLibrariesTwoProjects() {
		libs = append(libs, r.Library)
	}

	plan, err := newTestPoolingService().ComputeHierarchical(libs, domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, "plan-fixed", plan.ID)
	assert.Equal(t, 8, plan.TotalPipettingSteps)
	assert.Equal(t, domain.GroupByProject, plan.GroupingColumn)
	assert.Equal(t, domain.DefaultFinalPoolVolumeUL, plan.FinalPoolVolumeUL)
	assert.Len(t, plan.Tables(), 3)
}

func TestPoolingService_ComputeHierarchical_InvalidSettings(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Hierarchy.MaxPerPool = 0

	_, err := newTestPoolingService().ComputeHierarchical([]domain.Library{lib("P1", "A", 10, 10)}, settings)

	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestPoolingService_ComputeWithPrePools(t *testing.T) {
	libs := []domain.Library{
		lib("P1", "L1", 10, 10),
		lib("P1", "L2", 10, 10),
		lib("P1", "L3", 10, 10),
	}
	def, err := domain.NewPrePoolDefinition("Pair", []string{"L1", "L2"})
	require.NoError(t, err)

	plan, err := newTestPoolingService().ComputeWithPrePools(libs, []domain.PrePoolDefinition{def}, domain.DefaultPoolingParams())

	require.NoError(t, err)
	assert.Equal(t, "plan-fixed", plan.ID)
	assert.Equal(t, 1, plan.StandaloneLibraries)
	assert.Len(t, plan.FinalPool, 2)
}

func TestPoolingService_ComputeWithPrePools_Invalid(t *testing.T) {
	def := domain.PrePoolDefinition{ID: "x", Name: "X", Members: []string{"missing"}}

	_, err := newTestPoolingService().ComputeWithPrePools(
		[]domain.Library{lib("P1", "L1", 10, 10)}, []domain.PrePoolDefinition{def}, domain.DefaultPoolingParams())

	assert.ErrorIs(t, err, domain.ErrInvalidPrePool)
	assert.Contains(t, err.Error(), "pre-pooling")
}
