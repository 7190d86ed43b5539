// Package tabular provides the in-memory table model shared by the
// normalization, identifier derivation and linking stages.
//
// A Table is an ordered list of named, typed columns plus rows of
// Values. Row order is significant: identifier derivation numbers rows
// in table order, so any sorting happens before derivation, never
// after. All operations are deterministic; two tables built from the
// same input are byte-identical under Checksum.
package tabular

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Table is an ordered collection of typed columns and rows.
type Table struct {
	name string
	cols []string
	idx  map[string]int
	rows [][]Value
}

// New creates an empty table with the given name and column order.
func New(name string, cols ...string) *Table {
	t := &Table{
		name: name,
		cols: append([]string(nil), cols...),
		idx:  make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		t.idx[c] = i
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.idx[name]
	return ok
}

// ColumnIndex returns the position of a column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.idx[name]
	return i, ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow adds a row. The number of values must match the number of
// columns.
func (t *Table) AppendRow(vals ...Value) error {
	if len(vals) != len(t.cols) {
		return fmt.Errorf(
			"table %s: row has %d values, want %d",
			t.name, len(vals), len(t.cols),
		)
	}
	t.rows = append(t.rows, append([]Value(nil), vals...))
	return nil
}

// Row returns the values of row i in column order. The slice is shared
// with the table; callers must not modify it.
func (t *Table) Row(i int) []Value {
	return t.rows[i]
}

// Cell returns the value at row i, column name.
func (t *Table) Cell(i int, name string) (Value, bool) {
	j, ok := t.idx[name]
	if !ok || i < 0 || i >= len(t.rows) {
		return Value{}, false
	}
	return t.rows[i][j], true
}

// SetCell replaces the value at row i, column name.
func (t *Table) SetCell(i int, name string, v Value) bool {
	j, ok := t.idx[name]
	if !ok || i < 0 || i >= len(t.rows) {
		return false
	}
	t.rows[i][j] = v
	return true
}

// AddColumn appends a column filled with the given value in every
// existing row. Fails if the column already exists.
func (t *Table) AddColumn(name string, fill Value) error {
	if _, ok := t.idx[name]; ok {
		return fmt.Errorf("table %s: column %s already exists", t.name, name)
	}
	t.idx[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	res := New(t.name, t.cols...)
	res.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		res.rows[i] = append([]Value(nil), row...)
	}
	return res
}

// Rename returns the table itself with a new name. Used when a
// normalized table takes the target schema's name.
func (t *Table) Rename(name string) *Table {
	t.name = name
	return t
}

// SortBy stably sorts rows by the canonical textual form of the given
// columns, in order of significance. Unknown columns are ignored.
// Sorting precedes identifier derivation: numbering order is
// chronological when sorted by date and time first.
func (t *Table) SortBy(cols ...string) {
	var idxs []int
	for _, c := range cols {
		if i, ok := t.idx[c]; ok {
			idxs = append(idxs, i)
		}
	}
	if len(idxs) == 0 {
		return
	}
	sort.SliceStable(t.rows, func(a, b int) bool {
		for _, i := range idxs {
			va, vb := t.rows[a][i].String(), t.rows[b][i].String()
			if va != vb {
				return va < vb
			}
		}
		return false
	})
}

// Checksum returns a hex SHA-256 over the table name, column order and
// every cell's canonical form. Two runs over identical input must
// produce identical checksums.
func (t *Table) Checksum() string {
	h := sha256.New()
	h.Write([]byte(t.name))
	h.Write([]byte{0})
	for _, c := range t.cols {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	for _, row := range t.rows {
		for _, v := range row {
			if v.IsNull() {
				h.Write([]byte{1})
			} else {
				h.Write([]byte(v.String()))
			}
			h.Write([]byte{0})
		}
		h.Write([]byte{2})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Equal reports whether two tables have the same name, columns and
// cell values.
func (t *Table) Equal(other *Table) bool {
	return other != nil && t.Checksum() == other.Checksum()
}
