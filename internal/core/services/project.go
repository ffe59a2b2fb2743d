package services

import (
	"fmt"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// SummariseByProject aggregates computed rows per project.
// Projects appear in the order they first occur in rows.
func SummariseByProject(rows []domain.ComputedLibrary) ([]domain.ProjectSummary, error) {
	index := make(map[string]int)
	var out []domain.ProjectSummary

	for i := range rows {
		r := rows[i]
		if r.ProjectID == "" {
			return nil, fmt.Errorf("row %d (%s) has no %s: %w", i+1, r.Name, domain.ColProjectID, domain.ErrMissingColumn)
		}
		pos, ok := index[r.ProjectID]
		if !ok {
			pos = len(out)
			index[r.ProjectID] = pos
			out = append(out, domain.ProjectSummary{ProjectID: r.ProjectID})
		}
		s := &out[pos]
		s.LibraryCount++
		s.TotalVolumeUL = domain.AddVolume(s.TotalVolumeUL, r.StockVolumeUL)
		s.PoolFraction += r.PoolFraction
		if r.ExpectedReadsM != nil {
			if s.ExpectedReadsM == nil {
				s.ExpectedReadsM = new(float64)
			}
			*s.ExpectedReadsM += *r.ExpectedReadsM
		}
	}
	return out, nil
}
