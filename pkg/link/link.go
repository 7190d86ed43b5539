// Package link attaches fields from one normalized table onto another
// by identifier equality and surfaces unresolved references.
//
// Only many-to-one joins are supported: many stations share one site,
// many observations share one taxon. Duplicate right-hand keys are
// resolved by preferring the row whose status is "accepted"; remaining
// duplicates fail the join, since they indicate duplicate lookup
// entries upstream. Linking is pure and idempotent.
package link

import (
	"strings"

	"github.com/pristineseas/psdb/pkg/tabular"
)

// Policy selects how unmatched left rows are handled.
type Policy string

const (
	// Inner drops left rows with no right-hand match.
	Inner Policy = "inner"

	// LeftPreserveUnmatched keeps unmatched left rows with typed
	// nulls for the right-hand fields and reports them.
	LeftPreserveUnmatched Policy = "left-preserve-unmatched"
)

// statusCol is the right-hand column consulted for the duplicate-key
// tie-break.
const statusCol = "status"

// acceptedStatus wins the tie-break among duplicate lookup rows.
const acceptedStatus = "accepted"

// Unmatched records a left row whose key had no right-hand match.
type Unmatched struct {
	// Key is the composite join key of the unmatched row.
	Key string

	// Table is the name of the left table the row came from.
	Table string
}

// Link joins left against right on the given key columns. Right-hand
// columns other than the keys are appended to the merged table in
// right-table order. The unmatched report lists left rows without a
// match; it is empty under a correctly ordered pipeline.
func Link(
	left, right *tabular.Table,
	keys []string,
	policy Policy,
) (*tabular.Table, []Unmatched, error) {
	for _, k := range keys {
		if !left.HasColumn(k) {
			return nil, nil, MissingJoinKeyError(left.Name(), k)
		}
		if !right.HasColumn(k) {
			return nil, nil, MissingJoinKeyError(right.Name(), k)
		}
	}

	rightIdx, err := indexRight(right, keys)
	if err != nil {
		return nil, nil, err
	}

	// Right-hand columns to carry over: everything but the keys.
	var carry []string
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	for _, c := range right.Columns() {
		if !keySet[c] && !left.HasColumn(c) {
			carry = append(carry, c)
		}
	}

	cols := append(left.Columns(), carry...)
	merged := tabular.New(left.Name(), cols...)

	var unmatched []Unmatched
	for i := 0; i < left.Len(); i++ {
		key, ok := rowKey(left, i, keys)
		var j int
		var matched bool
		if ok {
			j, matched = rightIdx[key]
		}

		if !matched {
			if policy == Inner {
				continue
			}
			unmatched = append(unmatched, Unmatched{
				Key:   key,
				Table: left.Name(),
			})
			row := append([]tabular.Value(nil), left.Row(i)...)
			for _, c := range carry {
				row = append(row, tabular.NewNull(columnKind(right, c)))
			}
			if err := merged.AppendRow(row...); err != nil {
				return nil, nil, err
			}
			continue
		}

		row := append([]tabular.Value(nil), left.Row(i)...)
		for _, c := range carry {
			v, _ := right.Cell(j, c)
			row = append(row, v)
		}
		if err := merged.AppendRow(row...); err != nil {
			return nil, nil, err
		}
	}
	return merged, unmatched, nil
}

// indexRight builds the key → row index for the right table, applying
// the accepted-status tie-break to duplicate keys.
func indexRight(
	right *tabular.Table,
	keys []string,
) (map[string]int, error) {
	byKey := make(map[string][]int, right.Len())
	order := make([]string, 0, right.Len())
	for i := 0; i < right.Len(); i++ {
		key, ok := rowKey(right, i, keys)
		if !ok {
			// lookup rows without a key can never match
			continue
		}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], i)
	}

	res := make(map[string]int, len(byKey))
	for _, key := range order {
		rows := byKey[key]
		if len(rows) == 1 {
			res[key] = rows[0]
			continue
		}
		accepted := acceptedRows(right, rows)
		if len(accepted) != 1 {
			return nil, AmbiguousJoinError(right.Name(), key, len(rows))
		}
		res[key] = accepted[0]
	}
	return res, nil
}

// acceptedRows filters duplicate rows down to those whose status is
// "accepted". Without a status column no tie-break is possible.
func acceptedRows(tab *tabular.Table, rows []int) []int {
	if !tab.HasColumn(statusCol) {
		return nil
	}
	var res []int
	for _, i := range rows {
		v, _ := tab.Cell(i, statusCol)
		if !v.IsNull() &&
			strings.EqualFold(strings.TrimSpace(v.String()), acceptedStatus) {
			res = append(res, i)
		}
	}
	return res
}

// rowKey renders the composite join key of a row. A null key component
// makes the row unmatchable.
func rowKey(tab *tabular.Table, i int, keys []string) (string, bool) {
	parts := make([]string, len(keys))
	for j, k := range keys {
		v, _ := tab.Cell(i, k)
		if v.IsNull() || v.String() == "" {
			return strings.Join(parts, "\x1f"), false
		}
		parts[j] = v.String()
	}
	return strings.Join(parts, "\x1f"), true
}

// columnKind infers the type of a column from its first non-null cell.
func columnKind(tab *tabular.Table, col string) tabular.Type {
	for i := 0; i < tab.Len(); i++ {
		v, _ := tab.Cell(i, col)
		if !v.IsNull() {
			return v.Kind()
		}
	}
	return tabular.String
}
