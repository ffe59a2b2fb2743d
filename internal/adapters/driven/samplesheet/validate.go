package samplesheet

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// Validation thresholds. Values under a Min* bound are errors; values
// past a Warn* bound are warnings.
const (
	MinConcentrationNgUL      = 0.01
	WarnLowConcentrationNgUL  = 0.1
	WarnHighConcentrationNgUL = 1000.0

	MinFragmentSizeBP      = 50.0
	WarnLowFragmentSizeBP  = 100.0
	WarnHighFragmentSizeBP = 10000.0

	MinTotalVolumeUL     = 0.1
	WarnLowTotalVolumeUL = 5.0

	MinMolarityNM      = 0.01
	WarnLowMolarityNM  = 0.1
	WarnHighMolarityNM = 1000.0

	MinTargetReadsM = 0.1
)

// Validate checks column presence, every row, and name/barcode uniqueness.
// Row numbers are 1-based data rows, not counting the header.
func Validate(sheet *Sheet) *domain.ValidationResult {
	res := &domain.ValidationResult{}

	for _, col := range RequiredColumns {
		if !sheet.Has(col) {
			res.AddError("Missing required column: %s", col)
		}
	}
	if !res.IsValid() {
		return res
	}
	if len(sheet.Rows) == 0 {
		res.AddError("Sample sheet has no library rows")
		return res
	}

	for i, row := range sheet.Rows {
		validateRow(res, i+1, row, sheet.Has(domain.ColEmpiricalNM))
	}
	checkUnique(res, sheet, domain.ColLibraryName)
	checkUnique(res, sheet, domain.ColBarcode)

	projects := make(map[string]bool)
	for _, row := range sheet.Rows {
		projects[row[domain.ColProjectID]] = true
	}
	res.Summary = map[string]any{
		"rows":     len(sheet.Rows),
		"projects": len(projects),
		"errors":   len(res.Errors),
		"warnings": len(res.Warnings),
	}
	return res
}

func validateRow(res *domain.ValidationResult, n int, row map[string]string, hasEmpirical bool) {
	for _, col := range []string{domain.ColProjectID, domain.ColLibraryName, domain.ColBarcode} {
		if row[col] == "" {
			res.AddError("Row %d, %s: Value cannot be empty", n, col)
		}
	}

	if conc, ok := positive(res, n, row, domain.ColConcentration); ok {
		switch {
		case conc < MinConcentrationNgUL:
			res.AddError("Row %d, %s: Concentration too low (%.3f ng/µl < %g ng/µl)",
				n, domain.ColConcentration, conc, MinConcentrationNgUL)
		case conc < WarnLowConcentrationNgUL:
			res.AddWarning("Row %d, %s: Very low concentration (%.3f ng/µl) - library may be too dilute",
				n, domain.ColConcentration, conc)
		case conc > WarnHighConcentrationNgUL:
			res.AddWarning("Row %d, %s: Very high concentration (%.1f ng/µl) - consider diluting",
				n, domain.ColConcentration, conc)
		}
	}

	if vol, ok := positive(res, n, row, domain.ColTotalVolume); ok {
		switch {
		case vol < MinTotalVolumeUL:
			res.AddError("Row %d, %s: Volume too low (%.2f µl < %g µl)", n, domain.ColTotalVolume, vol, MinTotalVolumeUL)
		case vol < WarnLowTotalVolumeUL:
			res.AddWarning("Row %d, %s: Low volume (%.1f µl) - may be insufficient for pooling", n, domain.ColTotalVolume, vol)
		}
	}

	if size, ok := positive(res, n, row, domain.ColFragmentSize); ok {
		switch {
		case size < MinFragmentSizeBP:
			res.AddError("Row %d, %s: Fragment size too small (%.0f bp < %g bp)", n, domain.ColFragmentSize, size, MinFragmentSizeBP)
		case size < WarnLowFragmentSizeBP:
			res.AddWarning("Row %d, %s: Unusually small fragment (%.0f bp)", n, domain.ColFragmentSize, size)
		case size > WarnHighFragmentSizeBP:
			res.AddWarning("Row %d, %s: Unusually large fragment (%.0f bp)", n, domain.ColFragmentSize, size)
		}
	}

	if hasEmpirical && row[domain.ColEmpiricalNM] != "" {
		if nm, ok := positive(res, n, row, domain.ColEmpiricalNM); ok {
			switch {
			case nm < MinMolarityNM:
				res.AddError("Row %d, %s: Molarity too low (%.3f nM < %g nM)", n, domain.ColEmpiricalNM, nm, MinMolarityNM)
			case nm < WarnLowMolarityNM:
				res.AddWarning("Row %d, %s: Very low molarity (%.3f nM)", n, domain.ColEmpiricalNM, nm)
			case nm > WarnHighMolarityNM:
				res.AddWarning("Row %d, %s: Very high molarity (%.1f nM)", n, domain.ColEmpiricalNM, nm)
			}
		}
	}

	if reads, ok := positive(res, n, row, domain.ColTargetReads); ok && reads < MinTargetReadsM {
		res.AddError("Row %d, %s: Target reads too low (%.2f M < %g M)", n, domain.ColTargetReads, reads, MinTargetReadsM)
	}
}

// positive parses a required numeric cell, recording an error when it is
// empty, unparsable or not > 0.
func positive(res *domain.ValidationResult, n int, row map[string]string, col string) (float64, bool) {
	raw := row[col]
	if raw == "" {
		res.AddError("Row %d, %s: Value cannot be empty", n, col)
		return 0, false
	}
	v, err := parseNumber(raw)
	if err != nil {
		res.AddError("Row %d, %s: Cannot parse as number, got '%s'", n, col, raw)
		return 0, false
	}
	if v <= 0 {
		res.AddError("Row %d, %s: Value must be > 0, got %g", n, col, v)
		return 0, false
	}
	return v, true
}

func parseNumber(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), 64)
}

func checkUnique(res *domain.ValidationResult, sheet *Sheet, col string) {
	rows := make(map[string][]int)
	var order []string
	for i, row := range sheet.Rows {
		v := row[col]
		if v == "" {
			continue
		}
		if _, seen := rows[v]; !seen {
			order = append(order, v)
		}
		rows[v] = append(rows[v], i+1)
	}
	for _, v := range order {
		if len(rows[v]) < 2 {
			continue
		}
		nums := make([]string, len(rows[v]))
		for i, n := range rows[v] {
			nums[i] = strconv.Itoa(n)
		}
		res.AddError("Duplicate %s found: '%s' in rows %s", col, v, strings.Join(nums, ", "))
	}
}
