package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// ComputePoolVolumes runs the single-stage volume engine over rows whose
// effective molarity has been resolved. It returns new rows; the input
// slice is not modified.
//
// The steps are order dependent:
//  1. stock = scaling / nM × reads
//  2. pre-dilution factor from the undiluted stock volume
//  3. final = stock × factor
//  4. advisory flags; a stock volume too large to represent is flagged
//     as an overflow and reported as domain.OverflowVolumeUL
//  5. pool fraction from stock × nM over exactly these rows
//  6. expected reads when a run total is given
func ComputePoolVolumes(rows []domain.ComputedLibrary, params domain.PoolingParams) ([]domain.ComputedLibrary, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no libraries to pool: %w", domain.ErrInvalidInput)
	}
	for i := range rows {
		if !(rows[i].EffectiveNM > 0) || math.IsInf(rows[i].EffectiveNM, 1) {
			return nil, fmt.Errorf("row %d (%s) has no effective molarity (got %g nM): %w",
				i+1, rows[i].Name, rows[i].EffectiveNM, domain.ErrMissingColumn)
		}
		if !(rows[i].TargetReadsM > 0) || math.IsInf(rows[i].TargetReadsM, 1) {
			return nil, fmt.Errorf("row %d (%s) has no target reads (got %g M): %w",
				i+1, rows[i].Name, rows[i].TargetReadsM, domain.ErrMissingColumn)
		}
	}

	out := make([]domain.ComputedLibrary, len(rows))
	molar := make([]float64, len(rows))
	var totalMolar float64
	for i := range rows {
		r := rows[i]
		r.Flags = nil
		r.ExpectedReadsM = nil

		r.StockVolumeUL = params.ScalingFactor / r.EffectiveNM * r.TargetReadsM
		if math.IsInf(r.StockVolumeUL, 0) {
			r.StockVolumeUL = domain.OverflowVolumeUL
			r.PreDiluteFactor = 1
			r.FinalVolumeUL = domain.OverflowVolumeUL
			r.Flags = []domain.Flag{{Kind: domain.FlagVolumeOverflow, Value: r.EffectiveNM}}
			molar[i] = params.ScalingFactor * r.TargetReadsM
		} else {
			r.PreDiluteFactor = params.Dilution.Factor(r.StockVolumeUL)
			r.FinalVolumeUL = r.StockVolumeUL * float64(r.PreDiluteFactor)
			r.Flags = volumeFlags(r, params)
			molar[i] = r.StockVolumeUL * r.EffectiveNM
		}

		totalMolar += molar[i]
		out[i] = r
	}

	for i := range out {
		if totalMolar > 0 && !math.IsInf(totalMolar, 0) {
			out[i].PoolFraction = molar[i] / totalMolar
		}
		if params.TotalReadsM != nil {
			expected := out[i].PoolFraction * *params.TotalReadsM
			out[i].ExpectedReadsM = &expected
		}
	}

	return out, nil
}

// volumeFlags evaluates every constraint independently, in reporting order.
func volumeFlags(r domain.ComputedLibrary, params domain.PoolingParams) []domain.Flag {
	var flags []domain.Flag
	if r.TotalVolumeUL > 0 && r.FinalVolumeUL > r.TotalVolumeUL {
		flags = append(flags, domain.Flag{
			Kind:  domain.FlagInsufficientVolume,
			Value: r.FinalVolumeUL,
			Limit: r.TotalVolumeUL,
		})
	}
	if r.PreDiluteFactor > 1 {
		flags = append(flags, domain.Flag{
			Kind:   domain.FlagPreDilution,
			Value:  r.StockVolumeUL,
			Factor: r.PreDiluteFactor,
		})
	}
	if r.FinalVolumeUL < params.MinVolumeUL {
		flags = append(flags, domain.Flag{
			Kind:  domain.FlagBelowMinimum,
			Value: r.FinalVolumeUL,
			Limit: params.MinVolumeUL,
		})
	}
	if params.MaxVolumeUL != nil && r.FinalVolumeUL > *params.MaxVolumeUL {
		flags = append(flags, domain.Flag{
			Kind:  domain.FlagAboveMaximum,
			Value: r.FinalVolumeUL,
			Limit: *params.MaxVolumeUL,
		})
	}
	return flags
}

// SummariseVolumes totals the rows of one engine run.
func SummariseVolumes(rows []domain.ComputedLibrary) domain.PoolSummary {
	s := domain.PoolSummary{Libraries: len(rows)}
	for i := range rows {
		s.TotalStockUL = domain.AddVolume(s.TotalStockUL, rows[i].StockVolumeUL)
		s.TotalFinalUL = domain.AddVolume(s.TotalFinalUL, rows[i].FinalVolumeUL)
		s.PoolFractionTotal += rows[i].PoolFraction
		if rows[i].Flagged() {
			s.FlaggedCount++
		}
		if rows[i].PreDiluteFactor > 1 {
			s.PreDilutionCount++
		}
	}
	return s
}
