package domain

// Project summary column names.
const (
	ColLibraryCount = "Library Count"
	ColVolumeTotal  = "Total Volume (µl)"
)

// ProjectSummary aggregates the computed libraries of one project.
type ProjectSummary struct {
	ProjectID     string  `json:"project_id"`
	LibraryCount  int     `json:"library_count"`
	TotalVolumeUL float64 `json:"total_volume_ul"`
	PoolFraction  float64 `json:"pool_fraction"`

	// ExpectedReadsM is set only when the rows carried expected reads.
	ExpectedReadsM *float64 `json:"expected_reads_m,omitempty"`
}

// Row flattens the summary for tabular export.
func (p ProjectSummary) Row() Row {
	row := Row{
		{ColProjectID, p.ProjectID},
		{ColLibraryCount, p.LibraryCount},
		{ColVolumeTotal, p.TotalVolumeUL},
		{ColPoolFraction, p.PoolFraction},
	}
	if p.ExpectedReadsM != nil {
		row = append(row, Field{ColExpectedReads, *p.ExpectedReadsM})
	}
	return row
}

// ProjectTable converts summaries into a named export table.
func ProjectTable(name string, summaries []ProjectSummary) Table {
	t := Table{Name: name, Rows: make([]Row, len(summaries))}
	for i := range summaries {
		t.Rows[i] = summaries[i].Row()
	}
	return t
}
