// Package models defines data structures for the division report pipeline.
package models

// Row maps a normalized column name to a cell value.
// Decoded tables hold the cell text; an absent key is an empty cell.
type Row map[string]interface{}

// Table is a decoded input file: a header and its data rows.
type Table struct {
	// Name is the source file name (no path).
	Name string `json:"name"`
	// Columns lists normalized column names in file order.
	Columns []string `json:"columns"`
	// Rows contains the non-blank data rows in file order.
	Rows []Row `json:"rows,omitempty"`
}

// HasColumn reports whether the table header contains col.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// AddColumn appends col to the header if it is not already present.
func (t *Table) AddColumn(col string) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
}
