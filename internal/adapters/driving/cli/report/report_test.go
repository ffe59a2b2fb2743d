package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

func TestDefaultTheme_ColorsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	colours := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error}

	seen := make(map[string]bool)
	for _, c := range colours {
		assert.False(t, seen[string(c)], "duplicate colour: %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	assert.NotNil(t, NewStyles(nil))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(new(bytes.Buffer)))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}

func TestNew_PlainForBuffers(t *testing.T) {
	var buf bytes.Buffer

	New(&buf).Title("Pooling plan")

	assert.Equal(t, "Pooling plan\n============\n", buf.String())
}

func computedRows() []domain.ComputedLibrary {
	return []domain.ComputedLibrary{
		{
			Library:         domain.Library{ProjectID: "P1", Name: "L1"},
			EffectiveNM:     2,
			StockVolumeUL:   1,
			PreDiluteFactor: 1,
			FinalVolumeUL:   1,
			PoolFraction:    0.75,
		},
		{
			Library:         domain.Library{ProjectID: "P2", Name: "L2"},
			EffectiveNM:     20,
			StockVolumeUL:   0.15,
			PreDiluteFactor: 10,
			FinalVolumeUL:   1.5,
			PoolFraction:    0.25,
			Flags:           []domain.Flag{{Kind: domain.FlagPreDilution, Value: 0.15, Factor: 10}},
		},
	}
}

func TestReport_Libraries(t *testing.T) {
	var buf bytes.Buffer

	NewWithStyles(&buf, nil).Libraries(computedRows())

	out := buf.String()
	assert.Contains(t, out, "Library")
	assert.Contains(t, out, "Final µl")
	assert.NotContains(t, out, "Pool ")
	assert.NotContains(t, out, "Reads (M)")
	assert.Contains(t, out, "75.00%")
	assert.Contains(t, out, "10x")
	assert.Contains(t, out, "pre_dilution")
	assert.Contains(t, out, "Warning: L2: Pre-dilute 10x recommended (stock volume 0.150 µl)")
	assert.NotContains(t, out, "Warning: L1")
}

func TestReport_Libraries_OptionalColumns(t *testing.T) {
	rows := computedRows()
	rows[0].PoolID = "P1_pool"
	rows[0].ExpectedReadsM = domain.Float(300)
	var buf bytes.Buffer

	NewWithStyles(&buf, nil).Libraries(rows)

	out := buf.String()
	assert.Contains(t, out, "Pool")
	assert.Contains(t, out, "P1_pool")
	assert.Contains(t, out, "Reads (M)")
	assert.Contains(t, out, "300.00")
}

func TestReport_Libraries_Empty(t *testing.T) {
	var buf bytes.Buffer

	NewWithStyles(&buf, nil).Libraries(nil)

	assert.Equal(t, "No libraries.\n", buf.String())
}

func TestReport_Summary(t *testing.T) {
	t.Run("flagged", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithStyles(&buf, nil).Summary(domain.PoolSummary{Libraries: 2, TotalFinalUL: 2.5, FlaggedCount: 1, PreDilutionCount: 1})

		assert.Contains(t, buf.String(), "Total final volume: 2.500 µl")
		assert.Contains(t, buf.String(), "Warning: 1 library flagged")
	})

	t.Run("clean", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithStyles(&buf, nil).Summary(domain.PoolSummary{Libraries: 2})

		assert.Contains(t, buf.String(), "No flagged libraries")
	})
}

func TestReport_Strategy(t *testing.T) {
	var buf bytes.Buffer
	rec := domain.StrategyRecommendation{
		Strategy:       domain.StrategyHierarchical,
		TotalLibraries: 120,
		MaxPerPool:     96,
		GroupCounts:    map[domain.GroupingColumn]int{domain.GroupByProject: 3},
		Viable:         map[domain.GroupingColumn]bool{domain.GroupByProject: false},
		Reason:         "too many libraries",
		Warning:        "no natural grouping",
	}

	NewWithStyles(&buf, nil).Strategy(rec)

	out := buf.String()
	assert.Contains(t, out, domain.StrategyHierarchical.Description())
	assert.Contains(t, out, "Libraries: 120 (max 96 per pool)")
	assert.Contains(t, out, "project_id")
	assert.Contains(t, out, "Warning: no natural grouping")
}

func TestReport_Validation(t *testing.T) {
	t.Run("valid with warnings", func(t *testing.T) {
		result := &domain.ValidationResult{Warnings: []string{"Row 1, Final ng/ul: Very low"}}
		var buf bytes.Buffer

		NewWithStyles(&buf, nil).Validation(result)

		assert.Contains(t, buf.String(), "Warning: Row 1, Final ng/ul: Very low")
		assert.Contains(t, buf.String(), "Sample sheet is valid (1 warning)")
	})

	t.Run("errors", func(t *testing.T) {
		result := &domain.ValidationResult{Errors: []string{"Missing required column: Barcodes"}}
		var buf bytes.Buffer

		NewWithStyles(&buf, nil).Validation(result)

		assert.Contains(t, buf.String(), "Error: Missing required column: Barcodes")
		assert.NotContains(t, buf.String(), "Sample sheet is valid")
	})
}

func TestReport_KeyValues(t *testing.T) {
	var buf bytes.Buffer

	NewWithStyles(&buf, nil).KeyValues(
		[]string{"pooling.scaling_factor", "pooling.max_volume_ul"},
		map[string]string{"pooling.scaling_factor": "0.1"},
	)

	assert.Equal(t,
		"  pooling.scaling_factor = 0.1\n"+
			"  pooling.max_volume_ul  = (not set)\n",
		buf.String())
}

func TestReport_SubPoolsAndPrePools(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithStyles(&buf, nil)

	r.SubPools([]domain.SubPool{{ID: "P1_pool", ParentProjectID: "P1", Members: []string{"L1", "L2"}, CalculatedNM: 3.5, TotalVolumeUL: 4}})
	r.PrePools([]domain.PrePoolResult{{Definition: domain.PrePoolDefinition{ID: "grp", Name: "Grp", Members: []string{"L3", "L4"}}}})

	out := buf.String()
	assert.Contains(t, out, "P1_pool")
	assert.Contains(t, out, "3.50")
	assert.Contains(t, out, "L3, L4")
}
