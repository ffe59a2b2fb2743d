package services

import (
	"fmt"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// CalculateMolarity converts a mass concentration to a molar concentration.
//
//	nM = (ng/µl × 10^6) / (660 × bp)
func CalculateMolarity(concentrationNgUL, fragmentSizeBP float64) (float64, error) {
	if concentrationNgUL <= 0 {
		return 0, fmt.Errorf("concentration must be > 0, got %g ng/µl: %w", concentrationNgUL, domain.ErrInvalidInput)
	}
	if fragmentSizeBP <= 0 {
		return 0, fmt.Errorf("fragment size must be > 0, got %g bp: %w", fragmentSizeBP, domain.ErrInvalidInput)
	}
	return (concentrationNgUL * 1e6) / (domain.MWPerBasePair * fragmentSizeBP), nil
}

// EffectiveMolarity returns the calculated molarity and the molarity to use.
// A positive empirical value overrides the calculated one.
func EffectiveMolarity(lib domain.Library) (calculated, effective float64, err error) {
	calculated, err = CalculateMolarity(lib.ConcentrationNgUL, lib.FragmentSizeBP)
	if err != nil {
		return 0, 0, err
	}
	if lib.HasEmpiricalMolarity() {
		return calculated, *lib.EmpiricalNM, nil
	}
	return calculated, calculated, nil
}

// ResolveMolarity attaches calculated and effective molarity to every library.
// The effective value is frozen here; later stages never read EmpiricalNM again.
func ResolveMolarity(libs []domain.Library) ([]domain.ComputedLibrary, error) {
	out := make([]domain.ComputedLibrary, len(libs))
	for i, lib := range libs {
		calc, eff, err := EffectiveMolarity(lib)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i+1, lib.Name, err)
		}
		out[i] = domain.ComputedLibrary{
			Library:      lib,
			CalculatedNM: calc,
			EffectiveNM:  eff,
		}
	}
	return out, nil
}
