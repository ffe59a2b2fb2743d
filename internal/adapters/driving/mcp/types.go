package mcp

import (
	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// LibraryInput is one sample-sheet row supplied to a tool.
type LibraryInput struct {
	ProjectID         string   `json:"project_id" jsonschema:"project the library belongs to"`
	Name              string   `json:"name" jsonschema:"unique library name"`
	ConcentrationNgUL float64  `json:"concentration_ng_ul" jsonschema:"mass concentration in ng/ul"`
	FragmentSizeBP    float64  `json:"fragment_size_bp" jsonschema:"adjusted peak size in base pairs"`
	TotalVolumeUL     float64  `json:"total_volume_ul,omitempty" jsonschema:"available volume in ul (0 = not checked)"`
	Barcode           string   `json:"barcode,omitempty" jsonschema:"index sequence"`
	EmpiricalNM       *float64 `json:"empirical_nm,omitempty" jsonschema:"measured molarity in nM, overrides the calculated value"`
	TargetReadsM      float64  `json:"target_reads_m" jsonschema:"desired reads in millions"`
}

func (l LibraryInput) library() domain.Library {
	return domain.Library{
		ProjectID:         l.ProjectID,
		Name:              l.Name,
		ConcentrationNgUL: l.ConcentrationNgUL,
		FragmentSizeBP:    l.FragmentSizeBP,
		TotalVolumeUL:     l.TotalVolumeUL,
		Barcode:           l.Barcode,
		EmpiricalNM:       l.EmpiricalNM,
		TargetReadsM:      l.TargetReadsM,
	}
}

func libraries(in []LibraryInput) []domain.Library {
	libs := make([]domain.Library, len(in))
	for i := range in {
		libs[i] = in[i].library()
	}
	return libs
}

// ParamsInput overrides configured pooling parameters for one call.
type ParamsInput struct {
	ScalingFactor *float64 `json:"scaling_factor,omitempty" jsonschema:"scaling factor (default from settings)"`
	MinVolumeUL   *float64 `json:"min_volume_ul,omitempty" jsonschema:"minimum pipettable volume in ul"`
	MaxVolumeUL   *float64 `json:"max_volume_ul,omitempty" jsonschema:"maximum volume per library in ul"`
	TotalReadsM   *float64 `json:"total_reads_m,omitempty" jsonschema:"total sequencing reads in millions, enables expected reads"`
}

// apply returns p with every supplied override set.
func (in ParamsInput) apply(p domain.PoolingParams) domain.PoolingParams {
	if in.ScalingFactor != nil {
		p.ScalingFactor = *in.ScalingFactor
	}
	if in.MinVolumeUL != nil {
		p.MinVolumeUL = *in.MinVolumeUL
	}
	if in.MaxVolumeUL != nil {
		p.MaxVolumeUL = in.MaxVolumeUL
	}
	if in.TotalReadsM != nil {
		p.TotalReadsM = in.TotalReadsM
	}
	return p
}

// LibraryOutput is one computed row.
type LibraryOutput struct {
	ProjectID       string   `json:"project_id"`
	Name            string   `json:"name"`
	PoolID          string   `json:"pool_id,omitempty"`
	CalculatedNM    float64  `json:"calculated_nm"`
	EffectiveNM     float64  `json:"effective_nm"`
	StockVolumeUL   float64  `json:"stock_volume_ul"`
	PreDiluteFactor int      `json:"pre_dilute_factor"`
	FinalVolumeUL   float64  `json:"final_volume_ul"`
	PoolFraction    float64  `json:"pool_fraction"`
	ExpectedReadsM  *float64 `json:"expected_reads_m,omitempty"`
	Flags           []string `json:"flags,omitempty"`
}

func libraryOutputs(rows []domain.ComputedLibrary) []LibraryOutput {
	out := make([]LibraryOutput, len(rows))
	for i := range rows {
		r := &rows[i]
		var flags []string
		for _, f := range r.Flags {
			flags = append(flags, f.Message())
		}
		out[i] = LibraryOutput{
			ProjectID:       r.ProjectID,
			Name:            r.Name,
			PoolID:          r.PoolID,
			CalculatedNM:    r.CalculatedNM,
			EffectiveNM:     r.EffectiveNM,
			StockVolumeUL:   r.StockVolumeUL,
			PreDiluteFactor: r.PreDiluteFactor,
			FinalVolumeUL:   r.FinalVolumeUL,
			PoolFraction:    r.PoolFraction,
			ExpectedReadsM:  r.ExpectedReadsM,
			Flags:           flags,
		}
	}
	return out
}
