package samplesheet

import (
	"strings"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// RequiredColumns must be present in every sheet.
var RequiredColumns = []string{
	domain.ColProjectID,
	domain.ColLibraryName,
	domain.ColConcentration,
	domain.ColTotalVolume,
	domain.ColBarcode,
	domain.ColFragmentSize,
	domain.ColTargetReads,
}

// OptionalColumns are read when present.
var OptionalColumns = []string{
	domain.ColEmpiricalNM,
}

var aliases = map[string]string{
	"project_id": domain.ColProjectID,
	"project":    domain.ColProjectID,
	"projectid":  domain.ColProjectID,

	"library_name": domain.ColLibraryName,
	"library":      domain.ColLibraryName,
	"sample_name":  domain.ColLibraryName,
	"sample":       domain.ColLibraryName,

	"final_ng_ul":   domain.ColConcentration,
	"final ng/µl":   domain.ColConcentration,
	"concentration": domain.ColConcentration,
	"conc":          domain.ColConcentration,

	"total_volume": domain.ColTotalVolume,
	"volume":       domain.ColTotalVolume,
	"vol":          domain.ColTotalVolume,

	"barcode": domain.ColBarcode,
	"index":   domain.ColBarcode,
	"indices": domain.ColBarcode,

	"adjusted_peak_size": domain.ColFragmentSize,
	"peak_size":          domain.ColFragmentSize,
	"fragment_size":      domain.ColFragmentSize,
	"size":               domain.ColFragmentSize,

	"empirical_library_nm": domain.ColEmpiricalNM,
	"empirical_nm":         domain.ColEmpiricalNM,
	"qpcr_nm":              domain.ColEmpiricalNM,

	"target_reads_m": domain.ColTargetReads,
	"target_reads":   domain.ColTargetReads,
	"reads":          domain.ColTargetReads,
}

// CanonicalColumn maps a raw header to its standard name. Unknown
// headers are returned unchanged.
func CanonicalColumn(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[normalized]; ok {
		return canonical
	}
	for _, col := range RequiredColumns {
		if strings.ToLower(col) == normalized {
			return col
		}
	}
	for _, col := range OptionalColumns {
		if strings.ToLower(col) == normalized {
			return col
		}
	}
	return name
}
