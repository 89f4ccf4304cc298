// Package view holds the table view-model: the pure derivation of the
// visible, ordered row set from the normalized records plus transient UI
// state (free-text filter, column sort).
package view

import (
	"sort"
	"strings"

	"aveenis/internal/stocks"
)

// SortDir is the direction of the active column sort.
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// Glyph returns the header indicator for the direction.
func (d SortDir) Glyph() string {
	switch d {
	case SortAsc:
		return "▲"
	case SortDesc:
		return "▼"
	default:
		return ""
	}
}

// Table owns the record set and the transient view state. Records are
// replaced wholesale and never mutated in place; VisibleRows derives a
// fresh ordering every call.
type Table struct {
	columns []Column
	records []stocks.TickerRecord

	filter  string
	sortKey string
	sortDir SortDir
}

// NewTable creates a view-model over the given column schema.
func NewTable(columns []Column) *Table {
	return &Table{columns: columns}
}

// SetRecords replaces the record set. Insertion order defines the
// unsorted fallback ordering.
func (t *Table) SetRecords(records []stocks.TickerRecord) {
	t.records = records
}

// Columns returns the column schema in display order.
func (t *Table) Columns() []Column {
	return t.columns
}

// SetFilter replaces the free-text filter. Empty means no filter.
func (t *Table) SetFilter(text string) {
	t.filter = text
}

// Filter returns the current filter text.
func (t *Table) Filter() string {
	return t.filter
}

// Sort returns the active sort column key and direction.
func (t *Table) Sort() (string, SortDir) {
	return t.sortKey, t.sortDir
}

// ToggleSort cycles the sort state for key: unsorted → asc → desc →
// unsorted when invoked repeatedly on the same column; a different column
// starts at asc. An unknown key is ignored.
func (t *Table) ToggleSort(key string) {
	if t.column(key) == nil {
		return
	}
	if key != t.sortKey {
		t.sortKey = key
		t.sortDir = SortAsc
		return
	}
	switch t.sortDir {
	case SortNone:
		t.sortDir = SortAsc
	case SortAsc:
		t.sortDir = SortDesc
	default:
		t.sortDir = SortNone
		t.sortKey = ""
	}
}

// VisibleRows derives the visible, ordered rows from (records, filter,
// sortKey, sortDir). Filtering is a case-insensitive substring test
// against the concatenated formatted cell values; sorting is stable so
// ties keep their insertion order. Unsorted state preserves fetch order.
func (t *Table) VisibleRows() []stocks.TickerRecord {
	rows := make([]stocks.TickerRecord, 0, len(t.records))
	needle := strings.ToLower(t.filter)
	for i := range t.records {
		if needle == "" || strings.Contains(strings.ToLower(t.rowText(&t.records[i])), needle) {
			rows = append(rows, t.records[i])
		}
	}

	col := t.column(t.sortKey)
	if col == nil || t.sortDir == SortNone {
		return rows
	}

	less := col.less
	sort.SliceStable(rows, func(i, j int) bool {
		if t.sortDir == SortDesc {
			return less(&rows[j], &rows[i])
		}
		return less(&rows[i], &rows[j])
	})
	return rows
}

// rowText concatenates the formatted cell values for filtering.
func (t *Table) rowText(r *stocks.TickerRecord) string {
	var b strings.Builder
	for i := range t.columns {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.columns[i].Text(r))
	}
	return b.String()
}

// column returns the column with the given key, or nil.
func (t *Table) column(key string) *Column {
	if key == "" {
		return nil
	}
	for i := range t.columns {
		if t.columns[i].Key == key {
			return &t.columns[i]
		}
	}
	return nil
}
