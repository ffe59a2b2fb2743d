package domain

// MWPerBasePair is the average molecular weight of one base pair of
// double-stranded DNA in g/mol. It is a physical constant, not a setting.
const MWPerBasePair = 660.0

// Library is one physical sequencing library as supplied by the sample sheet.
// Libraries are validated before they reach the core and are never mutated
// once a calculation begins.
type Library struct {
	// ProjectID groups libraries for reporting and hierarchical pooling.
	ProjectID string `json:"project_id"`

	// Name uniquely identifies the library.
	Name string `json:"name"`

	// ConcentrationNgUL is the mass concentration in ng/µl.
	ConcentrationNgUL float64 `json:"concentration_ng_ul"`

	// FragmentSizeBP is the adjusted peak size in base pairs.
	FragmentSizeBP float64 `json:"fragment_size_bp"`

	// TotalVolumeUL is the volume available for pipetting.
	// Zero means the available volume is unknown and is not checked.
	TotalVolumeUL float64 `json:"total_volume_ul"`

	// Barcode is the index sequence.
	Barcode string `json:"barcode"`

	// EmpiricalNM is an optional measured molarity (e.g. qPCR).
	EmpiricalNM *float64 `json:"empirical_nm,omitempty"`

	// TargetReadsM is the desired read allocation in millions.
	TargetReadsM float64 `json:"target_reads_m"`
}

// HasEmpiricalMolarity reports whether a usable measured molarity was supplied.
// Zero or negative values count as not provided.
func (l Library) HasEmpiricalMolarity() bool {
	return l.EmpiricalNM != nil && *l.EmpiricalNM > 0
}

// ComputedLibrary is a Library with every derived pooling value attached.
type ComputedLibrary struct {
	Library

	// PoolID names the sub-pool or pre-pool this row was pipetted into, if any.
	PoolID string `json:"pool_id,omitempty"`

	// CalculatedNM is always derived from concentration and fragment size.
	CalculatedNM float64 `json:"calculated_nm"`

	// EffectiveNM is the molarity every downstream formula uses.
	EffectiveNM float64 `json:"effective_nm"`

	// StockVolumeUL is the undiluted volume required.
	StockVolumeUL float64 `json:"stock_volume_ul"`

	// PreDiluteFactor is 1, 5 or 10.
	PreDiluteFactor int `json:"pre_dilute_factor"`

	// FinalVolumeUL is StockVolumeUL multiplied by PreDiluteFactor.
	FinalVolumeUL float64 `json:"final_volume_ul"`

	// PoolFraction is this row's molar share of its pooling call.
	PoolFraction float64 `json:"pool_fraction"`

	// ExpectedReadsM is set only when a total read count was supplied.
	ExpectedReadsM *float64 `json:"expected_reads_m,omitempty"`

	// Flags holds advisory warnings. They never exclude the row.
	Flags []Flag `json:"flags,omitempty"`
}

// Flagged reports whether the row carries any flag.
func (c ComputedLibrary) Flagged() bool {
	return len(c.Flags) > 0
}

// HasFlag reports whether the row carries a flag of the given kind.
func (c ComputedLibrary) HasFlag(kind FlagKind) bool {
	for _, f := range c.Flags {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Export column names, matching the sample-sheet headers where they overlap.
const (
	ColProjectID       = "Project ID"
	ColLibraryName     = "Library Name"
	ColBarcode         = "Barcodes"
	ColConcentration   = "Final ng/ul"
	ColFragmentSize    = "Adjusted peak size"
	ColTotalVolume     = "Total Volume"
	ColEmpiricalNM     = "Empirical Library nM"
	ColTargetReads     = "Target Reads (M)"
	ColPoolID          = "SubPool ID"
	ColCalculatedNM    = "Calculated nM"
	ColEffectiveNM     = "Effective nM (Use)"
	ColStockVolume     = "Stock Volume (µl)"
	ColPreDiluteFactor = "Pre-Dilute Factor"
	ColFinalVolume     = "Final Volume (µl)"
	ColPoolFraction    = "Pool Fraction"
	ColExpectedReads   = "Expected Reads (M)"
	ColFlags           = "Flags"
)

// Row flattens the computed library for tabular export.
func (c ComputedLibrary) Row() Row {
	row := Row{
		{ColProjectID, c.ProjectID},
		{ColLibraryName, c.Name},
	}
	if c.PoolID != "" {
		row = append(row, Field{ColPoolID, c.PoolID})
	}
	row = append(row,
		Field{ColBarcode, c.Barcode},
		Field{ColConcentration, c.ConcentrationNgUL},
		Field{ColFragmentSize, c.FragmentSizeBP},
	)
	if c.EmpiricalNM != nil {
		row = append(row, Field{ColEmpiricalNM, *c.EmpiricalNM})
	} else {
		row = append(row, Field{ColEmpiricalNM, nil})
	}
	row = append(row,
		Field{ColCalculatedNM, c.CalculatedNM},
		Field{ColEffectiveNM, c.EffectiveNM},
		Field{ColTargetReads, c.TargetReadsM},
		Field{ColStockVolume, c.StockVolumeUL},
		Field{ColPreDiluteFactor, c.PreDiluteFactor},
		Field{ColFinalVolume, c.FinalVolumeUL},
		Field{ColPoolFraction, c.PoolFraction},
	)
	if c.ExpectedReadsM != nil {
		row = append(row, Field{ColExpectedReads, *c.ExpectedReadsM})
	}
	return append(row, Field{ColFlags, JoinFlags(c.Flags)})
}

// LibraryTable converts computed rows into a named export table.
func LibraryTable(name string, rows []ComputedLibrary) Table {
	t := Table{Name: name, Rows: make([]Row, len(rows))}
	for i := range rows {
		t.Rows[i] = rows[i].Row()
	}
	return t
}
