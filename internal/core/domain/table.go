package domain

// Field is one named value in an exported row.
type Field struct {
	Key   string
	Value any
}

// Row is an ordered list of fields, ready for tabular rendering.
type Row []Field

// Get returns the value stored under key.
func (r Row) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Table is a named set of rows, e.g. one spreadsheet sheet.
type Table struct {
	Name string
	Rows []Row
}

// Columns returns the union of row keys in first-seen order.
func (t Table) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, row := range t.Rows {
		for _, f := range row {
			if !seen[f.Key] {
				seen[f.Key] = true
				cols = append(cols, f.Key)
			}
		}
	}
	return cols
}
