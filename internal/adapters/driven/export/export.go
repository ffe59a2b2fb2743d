// Package export writes pooling plan tables as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/poolcalc/internal/core/domain"
	"github.com/custodia-labs/poolcalc/internal/core/ports/driven"
)

// Ensure CSVWriter implements the interface.
var _ driven.TableWriter = (*CSVWriter)(nil)

// CSVWriter writes domain tables as CSV.
type CSVWriter struct{}

// NewCSVWriter creates a CSV table writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write renders every table to w. Each table is introduced by a
// single-cell record holding its name and followed by a blank line.
func (c *CSVWriter) Write(w io.Writer, tables []domain.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeTable(w, t, true); err != nil {
			return fmt.Errorf("write table %s: %w", t.Name, err)
		}
	}
	return nil
}

// WriteDir writes one file per table, named {prefix}_{table}.csv.
func (c *CSVWriter) WriteDir(dir, prefix string, tables []domain.Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", prefix, t.Name))
		if err := writeFile(path, t); err != nil {
			return paths, fmt.Errorf("write table %s: %w", t.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, t domain.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeTable(f, t, false)
}

func writeTable(w io.Writer, t domain.Table, titled bool) error {
	writer := csv.NewWriter(w)
	if titled {
		if err := writer.Write([]string{t.Name}); err != nil {
			return err
		}
	}

	columns := t.Columns()
	if err := writer.Write(columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			v, _ := row.Get(col)
			record[i] = formatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case float64:
		return fmt.Sprintf("%g", v)
	case *float64:
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%g", *v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprint(v)
	}
}
