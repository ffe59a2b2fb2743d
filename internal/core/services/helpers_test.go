package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

var fixedTime = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// lib builds a valid library whose effective molarity is nm.
func lib(project, name string, nm, reads float64) domain.Library {
	return domain.Library{
		ProjectID:         project,
		Name:              name,
		ConcentrationNgUL: 10,
		FragmentSizeBP:    500,
		TotalVolumeUL:     50,
		Barcode:           "BC-" + name,
		EmpiricalNM:       domain.Float(nm),
		TargetReadsM:      reads,
	}
}

// resolved is lib with molarity already resolved.
func resolved(project, name string, nm, reads float64) domain.ComputedLibrary {
	l := lib(project, name, nm, reads)
	return domain.ComputedLibrary{Library: l, CalculatedNM: nm, EffectiveNM: nm}
}

// manyResolved returns n identical rows in one project named L1..Ln.
func manyResolved(project string, n int) []domain.ComputedLibrary {
	out := make([]domain.ComputedLibrary, n)
	for i := range out {
		out[i] = resolved(project, fmt.Sprintf("%s-L%d", project, i+1), 10, 10)
	}
	return out
}

func byName(rows []domain.ComputedLibrary) map[string]domain.ComputedLibrary {
	m := make(map[string]domain.ComputedLibrary, len(rows))
	for _, r := range rows {
		m[r.Name] = r
	}
	return m
}
