package domain

import (
	"fmt"
	"strings"
	"time"
)

// PrePoolDefinition is a user-chosen group of libraries to pool first.
type PrePoolDefinition struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Notes   string   `json:"notes,omitempty"`
}

// PrePoolID derives an identifier from a display name.
func PrePoolID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NewPrePoolDefinition builds a definition whose ID is derived from name.
// Member names must be unique within the definition.
func NewPrePoolDefinition(name string, members []string) (PrePoolDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PrePoolDefinition{}, fmt.Errorf("pre-pool name cannot be empty: %w", ErrInvalidPrePool)
	}
	seen := make(map[string]bool, len(members))
	m := make([]string, 0, len(members))
	for _, lib := range members {
		if seen[lib] {
			return PrePoolDefinition{}, fmt.Errorf("pre-pool %q lists library %q more than once: %w", name, lib, ErrInvalidPrePool)
		}
		seen[lib] = true
		m = append(m, lib)
	}
	return PrePoolDefinition{ID: PrePoolID(name), Name: name, Members: m}, nil
}

// PrePoolResult is a pre-pool after its members have been pooled.
type PrePoolResult struct {
	Definition    PrePoolDefinition `json:"definition"`
	CalculatedNM  float64           `json:"calculated_nm"`
	TotalVolumeUL float64           `json:"total_volume_ul"`
	TargetReadsM  float64           `json:"target_reads_m"`
	Members       []ComputedLibrary `json:"members"`
}

// PrePoolProjectID marks synthetic pre-pool rows in the final pool.
const PrePoolProjectID = "PrePool"

// AsLibrary presents the pre-pool as a synthetic library for the final pool.
func (r PrePoolResult) AsLibrary() ComputedLibrary {
	return ComputedLibrary{
		Library: Library{
			ProjectID:     PrePoolProjectID,
			Name:          r.Definition.ID,
			TotalVolumeUL: r.TotalVolumeUL,
			TargetReadsM:  r.TargetReadsM,
		},
		CalculatedNM: r.CalculatedNM,
		EffectiveNM:  r.CalculatedNM,
	}
}

// PrePoolingPlan is the complete pre-pool -> final pool result.
type PrePoolingPlan struct {
	ID                  string            `json:"id"`
	PrePools            []PrePoolResult   `json:"prepools"`
	Standalone          []ComputedLibrary `json:"standalone"`
	FinalPool           []ComputedLibrary `json:"final_pool"`
	TotalLibraries      int               `json:"total_libraries"`
	LibrariesInPrePools int               `json:"libraries_in_prepools"`
	StandaloneLibraries int               `json:"standalone_libraries"`
	CreatedAt           time.Time         `json:"created_at"`
	Parameters          map[string]any    `json:"parameters"`
}

// NewPrePoolingPlan assembles a plan, requiring every library to be
// accounted for exactly once.
func NewPrePoolingPlan(
	id string,
	prePools []PrePoolResult,
	standalone, finalPool []ComputedLibrary,
	totalLibraries int,
	createdAt time.Time,
	params map[string]any,
) (*PrePoolingPlan, error) {
	inPrePools := 0
	for _, p := range prePools {
		inPrePools += len(p.Definition.Members)
	}
	if inPrePools+len(standalone) != totalLibraries {
		return nil, fmt.Errorf("%d libraries in pre-pools + %d standalone != %d total: %w",
			inPrePools, len(standalone), totalLibraries, ErrInvalidPlan)
	}

	return &PrePoolingPlan{
		ID:                  id,
		PrePools:            prePools,
		Standalone:          standalone,
		FinalPool:           finalPool,
		TotalLibraries:      totalLibraries,
		LibrariesInPrePools: inPrePools,
		StandaloneLibraries: len(standalone),
		CreatedAt:           createdAt,
		Parameters:          params,
	}, nil
}

// Pre-pool summary column names.
const (
	ColPrePoolID   = "PrePool ID"
	ColPrePoolName = "PrePool Name"
)

// Tables flattens the plan into export tables.
func (p *PrePoolingPlan) Tables() []Table {
	summary := Table{Name: "PrePools", Rows: make([]Row, len(p.PrePools))}
	tables := make([]Table, 0, len(p.PrePools)+2)
	for i, pp := range p.PrePools {
		summary.Rows[i] = Row{
			{ColPrePoolID, pp.Definition.ID},
			{ColPrePoolName, pp.Definition.Name},
			{ColMemberCount, len(pp.Definition.Members)},
			{ColSubPoolMembers, strings.Join(pp.Definition.Members, ", ")},
			{ColCalculatedNM, pp.CalculatedNM},
			{ColVolumeTotal, pp.TotalVolumeUL},
			{ColTargetReads, pp.TargetReadsM},
		}
		tables = append(tables, LibraryTable("PrePool_"+pp.Definition.ID, pp.Members))
	}
	tables = append([]Table{summary}, tables...)
	return append(tables, LibraryTable("FinalPool", p.FinalPool))
}
