package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

func TestMolarityCmd_RequiresTwoArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("molarity", "10")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestMolarityCmd_Prints(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("molarity", "10", "500")

	require.NoError(t, err)
	assert.Equal(t, "30.3030 nM\n", out)
}

func TestMolarityCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("molarity", "--json", "10", "500")
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 30.303, got["molarity_nm"], 1e-3)
	assert.Equal(t, 500.0, got["fragment_size_bp"])
}

func TestMolarityCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
		is       error
	}{
		{name: "non-numeric concentration", args: []string{"abc", "500"}, contains: "invalid concentration"},
		{name: "non-numeric size", args: []string{"10", "bp"}, contains: "invalid fragment size"},
		{name: "zero size", args: []string{"10", "0"}, is: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()

			_, _, err := execute(append([]string{"molarity"}, tt.args...)...)

			require.Error(t, err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
