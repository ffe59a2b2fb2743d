// Package prepoolfile reads pre-pool definitions from TOML:
//
//	[[prepool]]
//	name = "Low input"
//	libraries = ["LibA1", "LibA2"]
//	notes = "optional"
package prepoolfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.PrePoolSource = (*Source)(nil)

type file struct {
	PrePools []entry `toml:"prepool"`
}

type entry struct {
	Name      string   `toml:"name"`
	Libraries []string `toml:"libraries"`
	Notes     string   `toml:"notes"`
}

// Source loads pre-pool definitions from TOML files.
type Source struct{}

// NewSource creates a TOML pre-pool source.
func NewSource() *Source {
	return &Source{}
}

// ReadFile loads definitions from path.
func (s *Source) ReadFile(path string) ([]domain.PrePoolDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pre-pool file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses definitions in file order. Unknown keys are rejected so a
// misspelt "libraries" does not silently produce an empty pre-pool.
func Decode(r io.Reader) ([]domain.PrePoolDefinition, error) {
	var f file
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse pre-pool file: %v: %w", err, domain.ErrInvalidPrePool)
	}
	if len(f.PrePools) == 0 {
		return nil, fmt.Errorf("no [[prepool]] entries found: %w", domain.ErrInvalidPrePool)
	}

	defs := make([]domain.PrePoolDefinition, 0, len(f.PrePools))
	for i, e := range f.PrePools {
		def, err := domain.NewPrePoolDefinition(e.Name, e.Libraries)
		if err != nil {
			return nil, fmt.Errorf("pre-pool %d: %w", i+1, err)
		}
		def.Notes = e.Notes
		defs = append(defs, def)
	}
	return defs, nil
}

// Encode writes definitions in the same format Decode reads.
func Encode(w io.Writer, defs []domain.PrePoolDefinition) error {
	f := file{PrePools: make([]entry, len(defs))}
	for i, d := range defs {
		f.PrePools[i] = entry{Name: d.Name, Libraries: d.Members, Notes: d.Notes}
	}
	return toml.NewEncoder(w).Encode(f)
}
