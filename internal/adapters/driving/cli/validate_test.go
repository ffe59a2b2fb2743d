package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

func TestValidateCmd_Valid(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.csv", testSheet)

	out, _, err := execute("validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Sample sheet is valid (0 warnings)")
}

func TestValidateCmd_Errors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sheet := testSheet + "P2,L1,2,400,30,TTTT,10\n"
	path := writeFile(t, "sheet.csv", sheet)

	out, _, err := execute("validate", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, out, "Duplicate Library Name found: 'L1'")
}

func TestValidateCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "sheet.tsv", "Project ID\tLibrary Name\tFinal ng/ul\tAdjusted peak size\tTotal Volume\tBarcodes\tTarget Reads (M)\nP1\tL1\t0.05\t400\t30\tAAAA\t10\n")

	out, _, err := execute("validate", "--json", path)
	require.NoError(t, err)

	var result domain.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.Warnings)
}
