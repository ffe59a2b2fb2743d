package prepoolfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

const twoPrePools = `
[[prepool]]
name = "Low Input"
libraries = ["LibA1", "LibA2"]
notes = "pooled by hand"

[[prepool]]
name = "Controls"
libraries = ["PhiX"]
`

func TestDecode(t *testing.T) {
	defs, err := Decode(strings.NewReader(twoPrePools))

	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "low_input", defs[0].ID)
	assert.Equal(t, "Low Input", defs[0].Name)
	assert.Equal(t, []string{"LibA1", "LibA2"}, defs[0].Members)
	assert.Equal(t, "pooled by hand", defs[0].Notes)
	assert.Equal(t, "controls", defs[1].ID)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "", "no [[prepool]] entries"},
		{"bad toml", "[[prepool]\nname=", "parse pre-pool file"},
		{"unknown key", "[[prepool]]\nname = \"A\"\nlibs = [\"L1\"]\n", "parse pre-pool file"},
		{"missing name", "[[prepool]]\nlibraries = [\"L1\"]\n", "pre-pool 1: pre-pool name cannot be empty"},
		{"duplicate member", "[[prepool]]\nname = \"A\"\nlibraries = [\"L1\", \"L1\"]\n", `lists library "L1" more than once`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidPrePool)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	defs, err := Decode(strings.NewReader(twoPrePools))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, defs))

	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, defs, again)
}

func TestSource_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prepools.toml")
	require.NoError(t, os.WriteFile(path, []byte(twoPrePools), 0600))

	defs, err := NewSource().ReadFile(path)

	require.NoError(t, err)
	assert.Len(t, defs, 2)

	_, err = NewSource().ReadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
