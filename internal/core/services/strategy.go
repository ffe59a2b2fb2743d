package services

import (
	"fmt"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// RecommendStrategy decides between single-stage and hierarchical pooling.
// It is advisory only and has no side effects.
func RecommendStrategy(libs []domain.Library, cfg domain.HierarchyConfig) domain.StrategyRecommendation {
	rec := domain.StrategyRecommendation{
		TotalLibraries: len(libs),
		MaxPerPool:     cfg.MaxPerPool,
	}

	if len(libs) <= cfg.MaxPerPool {
		rec.Strategy = domain.StrategySingleStage
		rec.Reason = fmt.Sprintf("Small experiment (%d <= %d libraries)", len(libs), cfg.MaxPerPool)
		return rec
	}

	rec.GroupCounts = make(map[domain.GroupingColumn]int)
	rec.Viable = make(map[domain.GroupingColumn]bool)
	for _, col := range cfg.CandidateColumns {
		n, err := distinctValues(libs, col)
		if err != nil {
			continue
		}
		rec.GroupCounts[col] = n
		viable := n >= cfg.MinSubPools
		rec.Viable[col] = viable
		if viable {
			rec.GroupingOptions = append(rec.GroupingOptions, col)
		}
	}

	rec.Strategy = domain.StrategyHierarchical
	if len(rec.GroupingOptions) > 0 {
		rec.Reason = fmt.Sprintf("Large experiment (%d libraries) with natural grouping", len(libs))
		return rec
	}
	rec.Reason = fmt.Sprintf("Large experiment (%d libraries) requires hierarchical approach", len(libs))
	rec.Warning = fmt.Sprintf(
		"No natural grouping found (need >= %d distinct values). Manual grouping is required.",
		cfg.MinSubPools)
	return rec
}

func distinctValues(libs []domain.Library, col domain.GroupingColumn) (int, error) {
	seen := make(map[string]bool)
	for _, l := range libs {
		v, err := col.Value(l)
		if err != nil {
			return 0, err
		}
		seen[v] = true
	}
	return len(seen), nil
}
