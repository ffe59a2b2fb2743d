package driving

import "github.com/custodia-labs/poolcalc/internal/core/domain"

// PoolingService computes pooling plans from validated libraries.
type PoolingService interface {
	// Molarity converts a mass concentration to nM.
	Molarity(concentrationNgUL, fragmentSizeBP float64) (float64, error)

	// Compute pools every library directly into one pool.
	Compute(libs []domain.Library, params domain.PoolingParams) (*domain.SingleStagePlan, error)

	// SummariseProjects aggregates computed rows per project.
	SummariseProjects(rows []domain.ComputedLibrary) ([]domain.ProjectSummary, error)

	// RecommendStrategy suggests single-stage or hierarchical pooling.
	RecommendStrategy(libs []domain.Library, cfg domain.HierarchyConfig) domain.StrategyRecommendation

	// ComputeHierarchical pools libraries into sub-pools, then into a master pool.
	ComputeHierarchical(libs []domain.Library, settings domain.Settings) (*domain.HierarchicalPlan, error)

	// ComputeWithPrePools pools user-defined groups first, then the final pool.
	ComputeWithPrePools(
		libs []domain.Library,
		defs []domain.PrePoolDefinition,
		params domain.PoolingParams,
	) (*domain.PrePoolingPlan, error)
}
