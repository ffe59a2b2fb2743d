package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

// SubPoolGroup is one partition of libraries destined for a single sub-pool.
type SubPoolGroup struct {
	ID         string
	GroupValue string
	Rows       []domain.ComputedLibrary
}

// PartitionSubPools groups rows by column. Groups keep first-occurrence
// order. A group larger than capacity is split into contiguous chunks in
// row order, named {value}_pool_{n}; otherwise the group is {value}_pool.
func PartitionSubPools(rows []domain.ComputedLibrary, column domain.GroupingColumn, capacity int) ([]SubPoolGroup, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("sub-pool capacity must be >= 1, got %d: %w", capacity, domain.ErrInvalidParameter)
	}

	var order []string
	groups := make(map[string][]domain.ComputedLibrary)
	for i := range rows {
		v, err := column.Value(rows[i].Library)
		if err != nil {
			return nil, err
		}
		if v == "" {
			return nil, fmt.Errorf("row %d (%s) has empty %s: %w", i+1, rows[i].Name, column.Description(), domain.ErrMissingColumn)
		}
		if _, ok := groups[v]; !ok {
			order = append(order, v)
		}
		groups[v] = append(groups[v], rows[i])
	}

	var out []SubPoolGroup
	for _, v := range order {
		members := groups[v]
		if len(members) <= capacity {
			out = append(out, SubPoolGroup{ID: v + "_pool", GroupValue: v, Rows: members})
			continue
		}
		for start, n := 0, 1; start < len(members); start, n = start+capacity, n+1 {
			end := min(start+capacity, len(members))
			out = append(out, SubPoolGroup{
				ID:         fmt.Sprintf("%s_pool_%d", v, n),
				GroupValue: v,
				Rows:       members[start:end],
			})
		}
	}
	return out, nil
}

// BuildSubPool folds engine output for one sub-pool into a SubPool.
//
//	volume = Σ final
//	nM     = Σ(nM × final) / volume
//	reads  = Σ reads
func BuildSubPool(id string, volumes []domain.ComputedLibrary) (domain.SubPool, error) {
	var totalVolume, totalMoles, reads float64
	members := make([]string, len(volumes))
	for i := range volumes {
		totalVolume = domain.AddVolume(totalVolume, volumes[i].FinalVolumeUL)
		totalMoles += volumes[i].EffectiveNM * volumes[i].FinalVolumeUL
		reads += volumes[i].TargetReadsM
		members[i] = volumes[i].Name
	}

	var nm float64
	if totalVolume > 0 {
		nm = totalMoles / totalVolume
	}
	var parent string
	if len(volumes) > 0 {
		parent = volumes[0].ProjectID
	}
	return domain.NewSubPool(id, members, nm, totalVolume, reads, parent)
}

// ComputeHierarchical builds a two-stage plan: libraries into sub-pools,
// then sub-pools into one master pool. Any failure aborts the whole plan.
func ComputeHierarchical(
	rows []domain.ComputedLibrary,
	params domain.PoolingParams,
	cfg domain.HierarchyConfig,
	finalPoolVolumeUL float64,
	planID string,
	createdAt time.Time,
) (*domain.HierarchicalPlan, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Section("Stage 1: Libraries -> Sub-pools")
	groups, err := PartitionSubPools(rows, cfg.GroupingColumn, cfg.MaxPerPool)
	if err != nil {
		return nil, err
	}

	stage1Params := params.WithoutTotalReads()
	subPools := make([]domain.SubPool, 0, len(groups))
	var stage1Volumes []domain.ComputedLibrary
	for _, g := range groups {
		vols, err := ComputePoolVolumes(g.Rows, stage1Params)
		if err != nil {
			return nil, fmt.Errorf("sub-pool %s: %w", g.ID, err)
		}
		for i := range vols {
			vols[i].PoolID = g.ID
		}
		sp, err := BuildSubPool(g.ID, vols)
		if err != nil {
			return nil, err
		}
		logger.Debug("%s: %d libraries, %.3f µl at %.3f nM", sp.ID, len(sp.Members), sp.TotalVolumeUL, sp.CalculatedNM)
		subPools = append(subPools, sp)
		stage1Volumes = append(stage1Volumes, vols...)
	}

	stage1 := domain.StageData{
		Stage:          domain.StageLibraryToSubPool,
		Number:         1,
		InputCount:     len(rows),
		OutputCount:    len(subPools),
		Volumes:        stage1Volumes,
		PipettingSteps: len(rows),
		Description: fmt.Sprintf("Pool %d libraries into %d sub-pools by %s",
			len(rows), len(subPools), cfg.GroupingColumn.Description()),
		Warnings: flagWarnings(stage1Volumes),
	}

	logger.Section("Stage 2: Sub-pools -> Master pool")
	synthetic := make([]domain.ComputedLibrary, len(subPools))
	for i := range subPools {
		synthetic[i] = subPools[i].AsLibrary()
	}
	stage2Volumes, err := ComputePoolVolumes(synthetic, params)
	if err != nil {
		return nil, fmt.Errorf("master pool: %w", err)
	}

	stage2 := domain.StageData{
		Stage:          domain.StageSubPoolToMaster,
		Number:         2,
		InputCount:     len(subPools),
		OutputCount:    1,
		Volumes:        stage2Volumes,
		PipettingSteps: len(subPools),
		Description:    fmt.Sprintf("Pool %d sub-pools into 1 master pool", len(subPools)),
		Warnings:       flagWarnings(stage2Volumes),
	}

	plan, err := domain.NewHierarchicalPlan(
		planID,
		[]domain.StageData{stage1, stage2},
		subPools,
		finalPoolVolumeUL,
		cfg.GroupingColumn,
		createdAt,
		hierarchicalParameters(params, cfg),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("Hierarchical plan: %d libraries, %d sub-pools, %d pipetting steps",
		plan.TotalLibraries, plan.TotalSubPools, plan.TotalPipettingSteps)
	return plan, nil
}

func hierarchicalParameters(params domain.PoolingParams, cfg domain.HierarchyConfig) map[string]any {
	m := params.Values()
	m["grouping_column"] = cfg.GroupingColumn.String()
	m["max_per_pool"] = cfg.MaxPerPool
	return m
}

// flagWarnings renders one line per flagged row for a stage's warning list.
func flagWarnings(rows []domain.ComputedLibrary) []string {
	var out []string
	for i := range rows {
		if rows[i].Flagged() {
			out = append(out, fmt.Sprintf("%s: %s", rows[i].Name, domain.JoinFlags(rows[i].Flags)))
		}
	}
	return out
}
