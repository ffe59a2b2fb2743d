package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_HasEmpiricalMolarity(t *testing.T) {
	assert.False(t, Library{}.HasEmpiricalMolarity())
	assert.False(t, Library{EmpiricalNM: Float(0)}.HasEmpiricalMolarity())
	assert.False(t, Library{EmpiricalNM: Float(-1)}.HasEmpiricalMolarity())
	assert.True(t, Library{EmpiricalNM: Float(3.5)}.HasEmpiricalMolarity())
}

func TestComputedLibrary_Flags(t *testing.T) {
	c := ComputedLibrary{Flags: []Flag{{Kind: FlagPreDilution, Factor: 5}}}

	assert.True(t, c.Flagged())
	assert.True(t, c.HasFlag(FlagPreDilution))
	assert.False(t, c.HasFlag(FlagBelowMinimum))
	assert.False(t, ComputedLibrary{}.Flagged())
}

func TestComputedLibrary_Row(t *testing.T) {
	c := ComputedLibrary{
		Library: Library{
			ProjectID:         "P1",
			Name:              "L1",
			Barcode:           "ACGT",
			ConcentrationNgUL: 1.5,
			FragmentSizeBP:    300,
			TargetReadsM:      10,
		},
		CalculatedNM:    7.57,
		EffectiveNM:     7.57,
		StockVolumeUL:   0.13,
		PreDiluteFactor: 10,
		FinalVolumeUL:   1.3,
		PoolFraction:    0.5,
	}

	row := c.Row()

	v, ok := row.Get(ColLibraryName)
	require.True(t, ok)
	assert.Equal(t, "L1", v)
	v, _ = row.Get(ColEmpiricalNM)
	assert.Nil(t, v)
	_, ok = row.Get(ColExpectedReads)
	assert.False(t, ok)
	_, ok = row.Get(ColPoolID)
	assert.False(t, ok)
	assert.Equal(t, ColFlags, row[len(row)-1].Key)

	c.ExpectedReadsM = Float(200)
	c.PoolID = "P1_pool"
	row = c.Row()
	v, ok = row.Get(ColExpectedReads)
	require.True(t, ok)
	assert.Equal(t, 200.0, v)
	v, _ = row.Get(ColPoolID)
	assert.Equal(t, "P1_pool", v)
}

func TestTable_Columns(t *testing.T) {
	tbl := Table{Rows: []Row{
		{{"a", 1}, {"b", 2}},
		{{"a", 3}, {"c", 4}},
	}}

	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns())
}

func TestProjectSummary_Row(t *testing.T) {
	row := ProjectSummary{ProjectID: "P", LibraryCount: 2, TotalVolumeUL: 3, PoolFraction: 0.4}.Row()
	_, ok := row.Get(ColExpectedReads)
	assert.False(t, ok)

	row = ProjectSummary{ProjectID: "P", ExpectedReadsM: Float(10)}.Row()
	v, ok := row.Get(ColExpectedReads)
	require.True(t, ok)
	assert.Equal(t, 10.0, v)
}
