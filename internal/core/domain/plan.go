package domain

import (
	"fmt"
	"time"
)

// PoolingStage identifies one step of a multi-stage plan.
type PoolingStage string

// Available pooling stages.
const (
	// StageLibraryToSubPool pipettes individual libraries into sub-pools.
	StageLibraryToSubPool PoolingStage = "library_to_subpool"

	// StageSubPoolToMaster pipettes sub-pools into the master pool.
	StageSubPoolToMaster PoolingStage = "subpool_to_master"
)

// String returns the string representation.
func (s PoolingStage) String() string {
	return string(s)
}

// StageData is one stage of a multi-stage pooling plan.
type StageData struct {
	Stage          PoolingStage      `json:"stage"`
	Number         int               `json:"number"`
	InputCount     int               `json:"input_count"`
	OutputCount    int               `json:"output_count"`
	Volumes        []ComputedLibrary `json:"volumes"`
	PipettingSteps int               `json:"pipetting_steps"`
	Description    string            `json:"description"`
	Warnings       []string          `json:"warnings,omitempty"`
}

// HierarchyDepth is the fixed number of stages in a hierarchical plan.
const HierarchyDepth = 2

// HierarchicalPlan is a complete library -> sub-pool -> master pool plan.
type HierarchicalPlan struct {
	ID                  string         `json:"id"`
	Stages              []StageData    `json:"stages"`
	SubPools            []SubPool      `json:"subpools"`
	FinalPoolVolumeUL   float64        `json:"final_pool_volume_ul"`
	TotalLibraries      int            `json:"total_libraries"`
	TotalSubPools       int            `json:"total_subpools"`
	TotalPipettingSteps int            `json:"total_pipetting_steps"`
	Strategy            Strategy       `json:"strategy"`
	GroupingColumn      GroupingColumn `json:"grouping_column"`
	CreatedAt           time.Time      `json:"created_at"`
	Parameters          map[string]any `json:"parameters"`
}

// NewHierarchicalPlan assembles a plan and checks its structural invariants:
// exactly two stages, numbered 1 and 2, with the step total derived from them.
func NewHierarchicalPlan(
	id string,
	stages []StageData,
	subPools []SubPool,
	finalPoolVolumeUL float64,
	grouping GroupingColumn,
	createdAt time.Time,
	params map[string]any,
) (*HierarchicalPlan, error) {
	if len(stages) != HierarchyDepth {
		return nil, fmt.Errorf("hierarchical plan needs %d stages, got %d: %w", HierarchyDepth, len(stages), ErrInvalidPlan)
	}
	total := 0
	for i, s := range stages {
		if s.Number != i+1 {
			return nil, fmt.Errorf("stage %d has number %d, expected %d: %w", i, s.Number, i+1, ErrInvalidPlan)
		}
		total += s.PipettingSteps
	}
	if finalPoolVolumeUL <= 0 {
		return nil, fmt.Errorf("final pool volume must be > 0, got %g µl: %w", finalPoolVolumeUL, ErrInvalidParameter)
	}

	return &HierarchicalPlan{
		ID:                  id,
		Stages:              stages,
		SubPools:            subPools,
		FinalPoolVolumeUL:   finalPoolVolumeUL,
		TotalLibraries:      stages[0].InputCount,
		TotalSubPools:       len(subPools),
		TotalPipettingSteps: total,
		Strategy:            StrategyHierarchical,
		GroupingColumn:      grouping,
		CreatedAt:           createdAt,
		Parameters:          params,
	}, nil
}

// Stage returns the stage with the given 1-based number.
func (p *HierarchicalPlan) Stage(number int) (StageData, bool) {
	for _, s := range p.Stages {
		if s.Number == number {
			return s, true
		}
	}
	return StageData{}, false
}

// Tables flattens the plan into export tables: one per stage plus sub-pools.
func (p *HierarchicalPlan) Tables() []Table {
	tables := make([]Table, 0, len(p.Stages)+1)
	for _, s := range p.Stages {
		tables = append(tables, LibraryTable(fmt.Sprintf("Stage%d_%s", s.Number, s.Stage), s.Volumes))
	}
	sp := Table{Name: "SubPools", Rows: make([]Row, len(p.SubPools))}
	for i := range p.SubPools {
		sp.Rows[i] = p.SubPools[i].Row()
	}
	return append(tables, sp)
}
