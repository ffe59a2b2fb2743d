package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driving"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

// Ensure PoolingService implements the interface.
var _ driving.PoolingService = (*PoolingService)(nil)

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new plan identifier.
type IDGenerator func() string

// PoolingService wires molarity resolution and the pooling engines together.
// It holds no mutable state; concurrent calls are safe.
type PoolingService struct {
	now   Clock
	newID IDGenerator
}

// PoolingOption configures a PoolingService.
type PoolingOption func(*PoolingService)

// WithClock overrides the time source used for CreatedAt.
func WithClock(c Clock) PoolingOption {
	return func(s *PoolingService) {
		s.now = c
	}
}

// WithIDGenerator overrides the plan ID source.
func WithIDGenerator(g IDGenerator) PoolingOption {
	return func(s *PoolingService) {
		s.newID = g
	}
}

// NewPoolingService creates a pooling service using the wall clock and
// random UUID plan IDs.
func NewPoolingService(opts ...PoolingOption) *PoolingService {
	s := &PoolingService{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Molarity converts a mass concentration to nM.
func (s *PoolingService) Molarity(concentrationNgUL, fragmentSizeBP float64) (float64, error) {
	return CalculateMolarity(concentrationNgUL, fragmentSizeBP)
}

// Compute pools every library directly into one pool.
func (s *PoolingService) Compute(libs []domain.Library, params domain.PoolingParams) (*domain.SingleStagePlan, error) {
	logger.Section("Single-stage pooling")
	logger.Debug("Libraries: %d, scaling factor: %g", len(libs), params.ScalingFactor)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	rows, err := ResolveMolarity(libs)
	if err != nil {
		return nil, err
	}
	vols, err := ComputePoolVolumes(rows, params)
	if err != nil {
		return nil, err
	}
	projects, err := SummariseByProject(vols)
	if err != nil {
		return nil, err
	}

	summary := SummariseVolumes(vols)
	warnFlagged(vols)
	logger.Info("Pooled %d libraries: %.3f µl total, %d flagged", summary.Libraries, summary.TotalFinalUL, summary.FlaggedCount)

	return &domain.SingleStagePlan{
		ID:         s.newID(),
		Libraries:  vols,
		Projects:   projects,
		Summary:    summary,
		CreatedAt:  s.now(),
		Parameters: params.Values(),
	}, nil
}

// SummariseProjects aggregates computed rows per project.
func (s *PoolingService) SummariseProjects(rows []domain.ComputedLibrary) ([]domain.ProjectSummary, error) {
	return SummariseByProject(rows)
}

// RecommendStrategy suggests single-stage or hierarchical pooling.
func (s *PoolingService) RecommendStrategy(libs []domain.Library, cfg domain.HierarchyConfig) domain.StrategyRecommendation {
	rec := RecommendStrategy(libs, cfg)
	logger.Debug("Strategy: %s (%s)", rec.Strategy, rec.Reason)
	return rec
}

// ComputeHierarchical pools libraries into sub-pools, then into a master pool.
func (s *PoolingService) ComputeHierarchical(libs []domain.Library, settings domain.Settings) (*domain.HierarchicalPlan, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	rows, err := ResolveMolarity(libs)
	if err != nil {
		return nil, err
	}
	plan, err := ComputeHierarchical(
		rows,
		settings.Pooling,
		settings.Hierarchy,
		settings.FinalPoolVolumeUL,
		s.newID(),
		s.now(),
	)
	if err != nil {
		return nil, fmt.Errorf("hierarchical pooling: %w", err)
	}
	for _, st := range plan.Stages {
		warnFlagged(st.Volumes)
	}
	return plan, nil
}

// ComputeWithPrePools pools user-defined groups first, then the final pool.
func (s *PoolingService) ComputeWithPrePools(
	libs []domain.Library,
	defs []domain.PrePoolDefinition,
	params domain.PoolingParams,
) (*domain.PrePoolingPlan, error) {
	rows, err := ResolveMolarity(libs)
	if err != nil {
		return nil, err
	}
	plan, err := ComputeWithPrePools(rows, defs, params, s.newID(), s.now())
	if err != nil {
		return nil, fmt.Errorf("pre-pooling: %w", err)
	}
	warnFlagged(plan.FinalPool)
	return plan, nil
}

func warnFlagged(rows []domain.ComputedLibrary) {
	for i := range rows {
		if rows[i].Flagged() {
			logger.Warn("%s: %s", rows[i].Name, domain.JoinFlags(rows[i].Flags))
		}
	}
}
