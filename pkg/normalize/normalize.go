// Package normalize maps raw spreadsheet exports onto fixed target
// schemas and validates them.
//
// Normalization is "best effort, fully reported": violations become
// report entries, the offending cell becomes a typed null, and the run
// carries on. The report, not the table, is the primary deliverable of
// a run. Output is deterministic: identical input and mapping produce
// byte-identical tables.
package normalize

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pristineseas/psdb/pkg/tabular"
)

// Normalize maps a raw table onto a target schema. The output table's
// columns match the schema's field list and order exactly; unmapped
// source columns are dropped, missing mapped columns yield typed nulls
// and a report entry for required fields.
func Normalize(
	tab *tabular.Table,
	mapping *Mapping,
	schema *tabular.Schema,
) (*tabular.Table, *Report, error) {
	if err := checkMapping(mapping, schema); err != nil {
		return nil, nil, err
	}

	report := &Report{Table: schema.Name}
	out := tabular.New(schema.Name, schema.Columns()...)

	logDroppedColumns(tab, mapping)

	for i := 0; i < tab.Len(); i++ {
		rowKey := rowKey(tab, mapping, i)
		row := make([]tabular.Value, 0, len(schema.Fields))
		for _, field := range schema.Fields {
			row = append(row, normalizeCell(tab, i, rowKey, field, mapping, report))
		}
		if err := out.AppendRow(row...); err != nil {
			return nil, nil, err
		}
	}
	return out, report, nil
}

// normalizeCell produces the output value for one schema field of one
// row, recording violations in the report.
func normalizeCell(
	tab *tabular.Table,
	i int,
	rowKey string,
	field tabular.Field,
	mapping *Mapping,
	report *Report,
) tabular.Value {
	cm, mapped := mapping.byTarget(field.Name)
	if !mapped || !tab.HasColumn(cm.Source) {
		if field.Required {
			report.Add(rowKey, field.Name, "required field has no source column")
		}
		return tabular.NewNull(field.Type)
	}

	raw, _ := tab.Cell(i, cm.Source)
	if raw.IsNull() ||
		(raw.Kind() == tabular.String && strings.TrimSpace(raw.String()) == "") {
		if field.Required {
			report.Add(rowKey, field.Name, "required field is null")
		}
		return tabular.NewNull(field.Type)
	}

	v, err := convert(raw, cm.Convert, field.Type)
	if err != nil {
		report.Add(rowKey, field.Name,
			fmt.Sprintf("cannot coerce to %s: %s", field.Type, err))
		return tabular.NewNull(field.Type)
	}

	// Controlled vocabularies get no silent substitution: a case or
	// spacing mismatch is reported and the cell becomes null.
	if len(field.Allowed) > 0 && !field.AllowedContains(v.String()) {
		report.Add(rowKey, field.Name, "not in allowed values")
		return tabular.NewNull(field.Type)
	}

	if field.Required && v.IsNull() {
		report.Add(rowKey, field.Name, "required field is null")
	}
	return v
}

// checkMapping verifies every mapping target exists in the schema.
// A stale mapping is a configuration defect, not a data issue.
func checkMapping(mapping *Mapping, schema *tabular.Schema) error {
	for _, cm := range mapping.Columns {
		if _, ok := schema.Field(cm.Target); !ok {
			return fmt.Errorf(
				"mapping for %s: target field %s is not in the schema",
				schema.Name, cm.Target,
			)
		}
	}
	return nil
}

// rowKey resolves the report row key for row i: the mapped row-key
// field's raw value, falling back to the 1-based row number.
func rowKey(tab *tabular.Table, mapping *Mapping, i int) string {
	if mapping.RowKey != "" {
		if cm, ok := mapping.byTarget(mapping.RowKey); ok {
			if v, ok := tab.Cell(i, cm.Source); ok && !v.IsNull() {
				return v.String()
			}
		}
	}
	return fmt.Sprintf("row %d", i+1)
}

// logDroppedColumns records source columns with no mapping entry.
func logDroppedColumns(tab *tabular.Table, mapping *Mapping) {
	mapped := make(map[string]bool, len(mapping.Columns))
	for _, cm := range mapping.Columns {
		mapped[cm.Source] = true
	}
	for _, c := range tab.Columns() {
		if !mapped[c] {
			slog.Debug("Dropping unmapped column",
				"table", tab.Name(), "column", c)
		}
	}
}
