package samplesheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
	"github.com/custodia-labs/poolcalc/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.SampleSheetReader = (*Reader)(nil)

// Reader loads sample sheets from delimited text.
type Reader struct {
	// Comma is the delimiter used by Read. ReadFile picks it from the
	// file extension instead.
	Comma rune
}

// NewReader creates a comma-separated reader.
func NewReader() *Reader {
	return &Reader{Comma: ','}
}

// Read parses and validates a sheet. Libraries are nil when the result
// has errors; the returned error is reserved for unreadable input.
func (r *Reader) Read(in io.Reader) ([]domain.Library, *domain.ValidationResult, error) {
	return r.read(in, r.Comma)
}

// ReadFile opens path and reads it. ".tsv" and ".txt" files are tab separated.
func (r *Reader) ReadFile(path string) ([]domain.Library, *domain.ValidationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sample sheet: %w", err)
	}
	defer f.Close()

	logger.Debug("Reading sample sheet %s", path)
	return r.read(f, delimiterFor(path, r.Comma))
}

func (r *Reader) read(in io.Reader, comma rune) ([]domain.Library, *domain.ValidationResult, error) {
	sheet, err := Parse(in, comma)
	if err != nil {
		return nil, nil, err
	}

	res := Validate(sheet)
	logger.Debug("Sample sheet: %d rows, %d errors, %d warnings", len(sheet.Rows), len(res.Errors), len(res.Warnings))
	if !res.IsValid() {
		return nil, res, nil
	}

	libs, err := toLibraries(sheet)
	if err != nil {
		return nil, res, err
	}
	return libs, res, nil
}

func delimiterFor(path string, fallback rune) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return '\t'
	case ".csv":
		return ','
	default:
		return fallback
	}
}

// toLibraries converts a validated sheet.
func toLibraries(sheet *Sheet) ([]domain.Library, error) {
	libs := make([]domain.Library, len(sheet.Rows))
	for i, row := range sheet.Rows {
		nums := make(map[string]float64, 4)
		for _, col := range []string{domain.ColConcentration, domain.ColFragmentSize, domain.ColTotalVolume, domain.ColTargetReads} {
			v, err := parseNumber(row[col])
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i+1, col, domain.ErrInvalidInput)
			}
			nums[col] = v
		}

		lib := domain.Library{
			ProjectID:         row[domain.ColProjectID],
			Name:              row[domain.ColLibraryName],
			ConcentrationNgUL: nums[domain.ColConcentration],
			FragmentSizeBP:    nums[domain.ColFragmentSize],
			TotalVolumeUL:     nums[domain.ColTotalVolume],
			Barcode:           row[domain.ColBarcode],
			TargetReadsM:      nums[domain.ColTargetReads],
		}
		if raw := row[domain.ColEmpiricalNM]; raw != "" {
			v, err := parseNumber(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i+1, domain.ColEmpiricalNM, domain.ErrInvalidInput)
			}
			lib.EmpiricalNM = &v
		}
		libs[i] = lib
	}
	return libs, nil
}
