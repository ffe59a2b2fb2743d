package samplesheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
)

// Sheet is a parsed sample sheet with canonical column names.
type Sheet struct {
	Columns []string
	Rows    []map[string]string
}

// Has reports whether the sheet has the column.
func (s *Sheet) Has(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Parse reads a delimited sheet. The first non-empty record is the
// header; rows where every cell is blank are dropped.
func Parse(r io.Reader, comma rune) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = comma != '\t'

	sheet := &Sheet{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sample sheet: %w", err)
		}
		if blank(record) {
			continue
		}
		if sheet.Columns == nil {
			sheet.Columns = make([]string, len(record))
			for i, h := range record {
				sheet.Columns[i] = CanonicalColumn(strings.TrimPrefix(h, "\ufeff"))
			}
			continue
		}
		row := make(map[string]string, len(sheet.Columns))
		for i, col := range sheet.Columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	if sheet.Columns == nil {
		return nil, fmt.Errorf("sample sheet has no header row: %w", domain.ErrInvalidInput)
	}
	return sheet, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
