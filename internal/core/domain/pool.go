package domain

import "time"

// PoolSummary reports totals of one engine run. The total pool volume
// emerges from the scaling factor; it is reported, never enforced.
type PoolSummary struct {
	Libraries         int     `json:"libraries"`
	TotalStockUL      float64 `json:"total_stock_ul"`
	TotalFinalUL      float64 `json:"total_final_ul"`
	FlaggedCount      int     `json:"flagged_count"`
	PreDilutionCount  int     `json:"pre_dilution_count"`
	PoolFractionTotal float64 `json:"pool_fraction_total"`
}

// SingleStagePlan is the result of pooling every library directly.
type SingleStagePlan struct {
	ID         string            `json:"id"`
	Libraries  []ComputedLibrary `json:"libraries"`
	Projects   []ProjectSummary  `json:"projects"`
	Summary    PoolSummary       `json:"summary"`
	CreatedAt  time.Time         `json:"created_at"`
	Parameters map[string]any    `json:"parameters"`
}

// Tables flattens the plan into library and project export tables.
func (p *SingleStagePlan) Tables() []Table {
	return []Table{
		LibraryTable("PoolingPlan_Libraries", p.Libraries),
		ProjectTable("PoolingPlan_Projects", p.Projects),
	}
}
