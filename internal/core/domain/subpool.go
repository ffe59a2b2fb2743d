package domain

import (
	"fmt"
	"strings"
)

// SubPool is a group of libraries pooled together and then handled as a
// single virtual library in the next stage.
type SubPool struct {
	// ID is derived from the grouping value, e.g. "ProjA_pool" or "ProjA_pool_2".
	ID string `json:"id"`

	// Members lists library names in pipetting order.
	Members []string `json:"members"`

	// CalculatedNM is total moles over total volume.
	CalculatedNM float64 `json:"calculated_nm"`

	// TotalVolumeUL is the sum of member final volumes.
	TotalVolumeUL float64 `json:"total_volume_ul"`

	// TargetReadsM is the sum of member target reads.
	TargetReadsM float64 `json:"target_reads_m"`

	// ParentProjectID is the project of the first member, if known.
	ParentProjectID string `json:"parent_project_id,omitempty"`
}

// NewSubPool builds a sub-pool and enforces a positive total volume.
func NewSubPool(id string, members []string, calculatedNM, totalVolumeUL, targetReadsM float64, parent string) (SubPool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return SubPool{}, fmt.Errorf("sub-pool id cannot be empty: %w", ErrInvalidInput)
	}
	if len(members) == 0 {
		return SubPool{}, fmt.Errorf("sub-pool %q has no members: %w", id, ErrInvalidInput)
	}
	if totalVolumeUL <= 0 {
		return SubPool{}, fmt.Errorf("sub-pool %q total volume %g µl must be > 0: %w", id, totalVolumeUL, ErrEmptyPool)
	}

	m := make([]string, len(members))
	copy(m, members)
	return SubPool{
		ID:              id,
		Members:         m,
		CalculatedNM:    calculatedNM,
		TotalVolumeUL:   totalVolumeUL,
		TargetReadsM:    targetReadsM,
		ParentProjectID: parent,
	}, nil
}

// Sub-pool export column names.
const (
	ColSubPoolMembers = "Members"
	ColMemberCount    = "Member Count"
)

// Row flattens the sub-pool for tabular export.
func (s SubPool) Row() Row {
	return Row{
		{ColPoolID, s.ID},
		{ColProjectID, s.ParentProjectID},
		{ColMemberCount, len(s.Members)},
		{ColSubPoolMembers, strings.Join(s.Members, ", ")},
		{ColCalculatedNM, s.CalculatedNM},
		{ColVolumeTotal, s.TotalVolumeUL},
		{ColTargetReads, s.TargetReadsM},
	}
}

// AsLibrary presents the sub-pool as a synthetic library for the next stage.
// Its available volume is the sub-pool's own total volume.
func (s SubPool) AsLibrary() ComputedLibrary {
	project := s.ParentProjectID
	if project == "" {
		project = "SubPool"
	}
	return ComputedLibrary{
		Library: Library{
			ProjectID:     project,
			Name:          s.ID,
			TotalVolumeUL: s.TotalVolumeUL,
			TargetReadsM:  s.TargetReadsM,
		},
		CalculatedNM: s.CalculatedNM,
		EffectiveNM:  s.CalculatedNM,
	}
}
