package normalize

import "fmt"

// Issue is one schema violation found while normalizing a row. Issues
// are collected, not raised: analysts need every problem in a
// spreadsheet in one pass, and partial data is still useful for
// review.
type Issue struct {
	// RowKey identifies the offending row, normally by its site name
	// or derived identifier.
	RowKey string `json:"row_key"`

	// Field is the target schema field the issue belongs to.
	Field string `json:"field"`

	// Issue describes the violation.
	Issue string `json:"issue"`
}

// Report is the primary deliverable of a normalization run. It must be
// inspected before any upload proceeds.
type Report struct {
	// Table is the target schema the input was normalized against.
	Table string `json:"table"`

	// Issues lists violations in row order, then schema field order.
	Issues []Issue `json:"issues,omitempty"`
}

// Add appends one issue to the report.
func (r *Report) Add(rowKey, field, issue string) {
	r.Issues = append(r.Issues, Issue{RowKey: rowKey, Field: field, Issue: issue})
}

// Empty reports whether normalization found no violations.
func (r *Report) Empty() bool {
	return len(r.Issues) == 0
}

// Summary renders a short human-readable count for logs.
func (r *Report) Summary() string {
	if r.Empty() {
		return fmt.Sprintf("%s: no issues", r.Table)
	}
	return fmt.Sprintf("%s: %d issues", r.Table, len(r.Issues))
}
