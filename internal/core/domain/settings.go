package domain

import "fmt"

const unknownDescription = "Unknown"

// GroupingColumn names a library field that sub-pools can be grouped by.
type GroupingColumn string

// Available grouping columns.
const (
	// GroupByProject groups libraries by project id.
	GroupByProject GroupingColumn = "project_id"

	// GroupByBarcode groups libraries by barcode.
	GroupByBarcode GroupingColumn = "barcode"

	// GroupByLibrary puts every library in its own group.
	GroupByLibrary GroupingColumn = "library_name"
)

// IsValid returns true if the grouping column is recognised.
func (g GroupingColumn) IsValid() bool {
	switch g {
	case GroupByProject, GroupByBarcode, GroupByLibrary:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (g GroupingColumn) String() string {
	return string(g)
}

// Description returns a human-readable description of the column.
func (g GroupingColumn) Description() string {
	switch g {
	case GroupByProject:
		return ColProjectID
	case GroupByBarcode:
		return ColBarcode
	case GroupByLibrary:
		return ColLibraryName
	default:
		return unknownDescription
	}
}

// Value returns the grouping value of a library for this column.
func (g GroupingColumn) Value(l Library) (string, error) {
	switch g {
	case GroupByProject:
		return l.ProjectID, nil
	case GroupByBarcode:
		return l.Barcode, nil
	case GroupByLibrary:
		return l.Name, nil
	default:
		return "", fmt.Errorf("grouping column %q not found: %w", string(g), ErrMissingColumn)
	}
}

// AllGroupingColumns returns every supported grouping column.
func AllGroupingColumns() []GroupingColumn {
	return []GroupingColumn{GroupByProject, GroupByBarcode, GroupByLibrary}
}

// Hierarchy defaults.
const (
	// DefaultMaxPerPool is the size of a 96-well plate.
	DefaultMaxPerPool = 96

	// DefaultMinSubPools is the minimum group count that makes grouping worthwhile.
	DefaultMinSubPools = 5
)

// HierarchyConfig controls strategy selection and sub-pool partitioning.
type HierarchyConfig struct {
	// GroupingColumn is used to partition libraries into sub-pools.
	GroupingColumn GroupingColumn `json:"grouping_column"`

	// MaxPerPool caps libraries per pool and per sub-pool.
	MaxPerPool int `json:"max_per_pool"`

	// MinSubPools is the distinct-value count a candidate column needs.
	MinSubPools int `json:"min_subpools"`

	// CandidateColumns are evaluated, in order, by strategy selection.
	CandidateColumns []GroupingColumn `json:"candidate_columns"`
}

// DefaultHierarchyConfig returns the 96 / 5 / project defaults.
func DefaultHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{
		GroupingColumn:   GroupByProject,
		MaxPerPool:       DefaultMaxPerPool,
		MinSubPools:      DefaultMinSubPools,
		CandidateColumns: []GroupingColumn{GroupByProject},
	}
}

// Validate rejects configurations partitioning cannot honour.
func (h HierarchyConfig) Validate() error {
	if !h.GroupingColumn.IsValid() {
		return fmt.Errorf("grouping column %q not found: %w", string(h.GroupingColumn), ErrMissingColumn)
	}
	if h.MaxPerPool < 1 {
		return fmt.Errorf("max libraries per pool must be >= 1, got %d: %w", h.MaxPerPool, ErrInvalidParameter)
	}
	if h.MinSubPools < 1 {
		return fmt.Errorf("min sub-pools must be >= 1, got %d: %w", h.MinSubPools, ErrInvalidParameter)
	}
	return nil
}

// Settings holds every configurable input to the calculator.
type Settings struct {
	// Pooling holds the single-stage engine parameters.
	Pooling PoolingParams `json:"pooling"`

	// Hierarchy holds strategy and sub-pool settings.
	Hierarchy HierarchyConfig `json:"hierarchy"`

	// FinalPoolVolumeUL is the reported master pool volume target.
	FinalPoolVolumeUL float64 `json:"final_pool_volume_ul"`
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Pooling:           DefaultPoolingParams(),
		Hierarchy:         DefaultHierarchyConfig(),
		FinalPoolVolumeUL: DefaultFinalPoolVolumeUL,
	}
}

// Validate checks every section of the settings.
func (s Settings) Validate() error {
	if err := s.Pooling.Validate(); err != nil {
		return err
	}
	if err := s.Hierarchy.Validate(); err != nil {
		return err
	}
	if s.FinalPoolVolumeUL <= 0 {
		return fmt.Errorf("final pool volume must be > 0, got %g µl: %w", s.FinalPoolVolumeUL, ErrInvalidParameter)
	}
	return nil
}
