package mcp

import (
	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// mockPoolingService is a mock implementation of driving.PoolingService.
type mockPoolingService struct {
	molarity     float64
	single       *domain.SingleStagePlan
	projects     []domain.ProjectSummary
	strategy     domain.StrategyRecommendation
	hierarchical *domain.HierarchicalPlan
	prePooling   *domain.PrePoolingPlan
	err          error

	gotLibs     []domain.Library
	gotParams   domain.PoolingParams
	gotConfig   domain.HierarchyConfig
	gotSettings domain.Settings
	gotDefs     []domain.PrePoolDefinition
}

func (m *mockPoolingService) Molarity(_, _ float64) (float64, error) {
	return m.molarity, m.err
}

func (m *mockPoolingService) Compute(libs []domain.Library, params domain.PoolingParams) (*domain.SingleStagePlan, error) {
	m.gotLibs, m.gotParams = libs, params
	return m.single, m.err
}

func (m *mockPoolingService) SummariseProjects(_ []domain.ComputedLibrary) ([]domain.ProjectSummary, error) {
	return m.projects, m.err
}

func (m *mockPoolingService) RecommendStrategy(
	libs []domain.Library,
	cfg domain.HierarchyConfig,
) domain.StrategyRecommendation {
	m.gotLibs, m.gotConfig = libs, cfg
	return m.strategy
}

func (m *mockPoolingService) ComputeHierarchical(
	libs []domain.Library,
	settings domain.Settings,
) (*domain.HierarchicalPlan, error) {
	m.gotLibs, m.gotSettings = libs, settings
	return m.hierarchical, m.err
}

func (m *mockPoolingService) ComputeWithPrePools(
	libs []domain.Library,
	defs []domain.PrePoolDefinition,
	params domain.PoolingParams,
) (*domain.PrePoolingPlan, error) {
	m.gotLibs, m.gotDefs, m.gotParams = libs, defs, params
	return m.prePooling, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.Settings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Reset() error {
	return m.err
}

func (m *mockSettingsService) Values() (map[string]string, error) {
	return nil, m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}
