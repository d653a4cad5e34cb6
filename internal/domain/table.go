package domain

import "strings"

// Table is the normalized in-memory dataset: one Record per order/shipment
// plus the set of columns that were actually present in the source file.
// Engines check column presence before aggregating so a truncated dataset
// degrades to empty results instead of errors.
type Table struct {
	Records []Record
	columns map[string]struct{}
}

// NewTable builds a table over records, declaring which canonical columns
// the source carried.
func NewTable(records []Record, columns ...string) *Table {
	set := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		set[normalizeColumn(col)] = struct{}{}
	}
	return &Table{Records: records, columns: set}
}

// EmptyTable is the recovery value for load failures: zero rows, zero
// columns, valid input for every engine function.
func EmptyTable() *Table {
	return &Table{columns: map[string]struct{}{}}
}

// HasColumn reports whether the source carried the named column.
// Matching ignores case and surrounding whitespace.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.columns[normalizeColumn(name)]
	return ok
}

// HasColumns reports whether every named column is present.
func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if !t.HasColumn(name) {
			return false
		}
	}
	return true
}

// Columns returns the source column set in no particular order.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(t.columns))
	for col := range t.columns {
		cols = append(cols, col)
	}
	return cols
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Empty reports whether the table has no records.
func (t *Table) Empty() bool { return t.Len() == 0 }

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
