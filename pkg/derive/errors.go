package derive

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/pkg/errcode"
)

// MissingKeyFieldError is fatal for the row: an identifier cannot be
// derived, and a guessed default would corrupt every downstream join.
func MissingKeyFieldError(rowKey, detail string) error {
	msg := "Cannot derive identifier for <em>%s</em>: %s"
	vars := []any{rowKey, detail}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingKeyFieldError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: missing key field for %s: %s",
			fn, rowKey, detail),
	}
}

// DuplicateKeyError is fatal for the batch: a collision between
// supplied and generated identifiers means the numbering is no longer
// trustworthy.
func DuplicateKeyError(id string) error {
	msg := "Identifier <em>%s</em> collides with an existing one"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DuplicateKeyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: duplicate identifier %s", fn, id),
	}
}

// UnknownMethodError rejects methods without registered rules.
func UnknownMethodError(method string) error {
	msg := "Survey method <em>%s</em> has no derivation rules"
	vars := []any{method}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownMethodError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown method %s", fn, method),
	}
}
