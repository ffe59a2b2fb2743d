package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

// adjPmolDivisor converts target reads (M) to the relative picomole
// contribution used for curated pre-pools.
const adjPmolDivisor = 10.0

// ValidatePrePools checks definitions against the library set. Every
// problem is reported, not just the first.
func ValidatePrePools(rows []domain.ComputedLibrary, defs []domain.PrePoolDefinition) error {
	known := make(map[string]bool, len(rows))
	for i := range rows {
		known[rows[i].Name] = true
	}

	var errs []error
	claims := make(map[string]int)
	ids := make(map[string]int)
	for _, def := range defs {
		if len(def.Members) == 0 {
			errs = append(errs, fmt.Errorf("pre-pool %q has no libraries", def.Name))
		}
		ids[def.ID]++
		for _, lib := range def.Members {
			if !known[lib] {
				errs = append(errs, fmt.Errorf("library %q in pre-pool %q not found in data", lib, def.Name))
			}
			claims[lib]++
		}
	}

	for _, def := range defs {
		if known[def.ID] && claims[def.ID] == 0 {
			errs = append(errs, fmt.Errorf("pre-pool %q ID %q is also the name of a standalone library", def.Name, def.ID))
		}
	}

	if dups := repeated(claims); len(dups) > 0 {
		errs = append(errs, fmt.Errorf("libraries appear in multiple pre-pools: %s", strings.Join(dups, ", ")))
	}
	if dups := repeated(ids); len(dups) > 0 {
		errs = append(errs, fmt.Errorf("duplicate pre-pool IDs: %s", strings.Join(dups, ", ")))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidPrePool, errors.Join(errs...))
}

func repeated(counts map[string]int) []string {
	var out []string
	for k, n := range counts {
		if n > 1 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// ComputePrePool pools the members of one definition and derives the
// pre-pool concentration from target reads:
//
//	adj_pmol = reads / 10
//	nM       = Σ adj_pmol / Σ final
//
// This differs from sub-pool synthesis on purpose.
func ComputePrePool(rows []domain.ComputedLibrary, def domain.PrePoolDefinition, params domain.PoolingParams) (domain.PrePoolResult, error) {
	byName := make(map[string]domain.ComputedLibrary, len(rows))
	for i := range rows {
		byName[rows[i].Name] = rows[i]
	}
	members := make([]domain.ComputedLibrary, 0, len(def.Members))
	for _, name := range def.Members {
		r, ok := byName[name]
		if !ok {
			return domain.PrePoolResult{}, fmt.Errorf("library %q in pre-pool %q: %w", name, def.Name, domain.ErrNotFound)
		}
		members = append(members, r)
	}

	vols, err := ComputePoolVolumes(members, params.WithoutTotalReads())
	if err != nil {
		return domain.PrePoolResult{}, fmt.Errorf("pre-pool %s: %w", def.ID, err)
	}

	var totalVolume, totalPmol, reads float64
	for i := range vols {
		vols[i].PoolID = def.ID
		totalVolume = domain.AddVolume(totalVolume, vols[i].FinalVolumeUL)
		totalPmol += vols[i].TargetReadsM / adjPmolDivisor
		reads += vols[i].TargetReadsM
	}
	if totalVolume <= 0 {
		return domain.PrePoolResult{}, fmt.Errorf("pre-pool %q total volume %g µl must be > 0: %w", def.ID, totalVolume, domain.ErrEmptyPool)
	}

	return domain.PrePoolResult{
		Definition:    def,
		CalculatedNM:  totalPmol / totalVolume,
		TotalVolumeUL: totalVolume,
		TargetReadsM:  reads,
		Members:       vols,
	}, nil
}

// ComputeWithPrePools pools each definition, then pools the standalone
// libraries together with one synthetic row per pre-pool.
func ComputeWithPrePools(
	rows []domain.ComputedLibrary,
	defs []domain.PrePoolDefinition,
	params domain.PoolingParams,
	planID string,
	createdAt time.Time,
) (*domain.PrePoolingPlan, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("at least one pre-pool definition required: %w", domain.ErrInvalidPrePool)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := ValidatePrePools(rows, defs); err != nil {
		return nil, err
	}

	logger.Section("Pre-pools")
	claimed := make(map[string]bool)
	results := make([]domain.PrePoolResult, 0, len(defs))
	for _, def := range defs {
		res, err := ComputePrePool(rows, def, params)
		if err != nil {
			return nil, err
		}
		logger.Debug("%s: %d libraries, %.3f µl at %.3f nM", def.ID, len(def.Members), res.TotalVolumeUL, res.CalculatedNM)
		for _, m := range def.Members {
			claimed[m] = true
		}
		results = append(results, res)
	}

	var standalone []domain.ComputedLibrary
	for i := range rows {
		if !claimed[rows[i].Name] {
			standalone = append(standalone, rows[i])
		}
	}

	logger.Section("Final pool")
	combined := make([]domain.ComputedLibrary, 0, len(standalone)+len(results))
	combined = append(combined, standalone...)
	for _, res := range results {
		combined = append(combined, res.AsLibrary())
	}
	final, err := ComputePoolVolumes(combined, params)
	if err != nil {
		return nil, fmt.Errorf("final pool: %w", err)
	}
	logger.Info("Final pool: %d standalone libraries + %d pre-pools", len(standalone), len(results))

	return domain.NewPrePoolingPlan(planID, results, standalone, final, len(rows), createdAt, params.Values())
}
