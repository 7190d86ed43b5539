package link

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/pkg/errcode"
)

// AmbiguousJoinError is fatal for the join: more than one right-hand
// row still matches a key after the accepted-status tie-break. That is
// a data-quality defect upstream (duplicate lookup rows), not a valid
// one-to-many relationship.
func AmbiguousJoinError(table, key string, count int) error {
	msg := `Join against <em>%s</em> is ambiguous

<em>Key:</em> %s
<em>Matching rows:</em> %d

Duplicate lookup rows remain after preferring accepted status.
Fix the lookup table before linking.`
	vars := []any{table, key, count}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AmbiguousJoinError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: ambiguous join on %s: key %s has %d rows",
			fn, table, key, count),
	}
}

// MissingJoinKeyError rejects joins on columns absent from a table.
func MissingJoinKeyError(table, column string) error {
	msg := "Table <em>%s</em> has no join column <em>%s</em>"
	vars := []any{table, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingJoinKeyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: table %s has no column %s",
			fn, table, column),
	}
}
