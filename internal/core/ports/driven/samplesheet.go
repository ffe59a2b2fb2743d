package driven

import (
	"io"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// SampleSheetReader turns a sample sheet into validated libraries.
// Column aliasing and unit checks happen here, never in the core.
type SampleSheetReader interface {
	// Read parses and validates a sheet. Libraries are returned only when
	// the result carries no errors.
	Read(r io.Reader) ([]domain.Library, *domain.ValidationResult, error)

	// ReadFile opens path and calls Read.
	ReadFile(path string) ([]domain.Library, *domain.ValidationResult, error)
}

// PrePoolSource loads user pre-pool definitions.
type PrePoolSource interface {
	// ReadFile loads definitions from path.
	ReadFile(path string) ([]domain.PrePoolDefinition, error)
}

// TableWriter writes export tables.
type TableWriter interface {
	// Write renders tables to w.
	Write(w io.Writer, tables []domain.Table) error

	// WriteDir writes one file per table into dir and returns the paths.
	WriteDir(dir, prefix string, tables []domain.Table) ([]string, error)
}
