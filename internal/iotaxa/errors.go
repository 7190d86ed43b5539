package iotaxa

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/pkg/errcode"
)

func LookupError(err error) error {
	msg := `Cannot read taxa lookup

<em>How to fix:</em>
  1. Place the curated lookup as <em>taxa.csv</em> in the data directory
  2. The file needs <em>taxon_code</em> and <em>scientific_name</em> columns`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxaLookupError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: taxa lookup: %w", fn, err),
	}
}

func DuplicateCodeError(code string, count int) error {
	msg := "Taxon code <em>%s</em> has %d rows and no single accepted one"
	vars := []any{code, count}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxaLookupError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"from %s: ambiguous taxon code %s (%d rows)",
			fn, code, count),
	}
}

func ParseError(err error) error {
	msg := "Cannot parse scientific names"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxaParseError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: name parsing: %w", fn, err),
	}
}

func CacheError(err error) error {
	msg := "Taxa parse cache failure"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxaCacheError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: taxa cache: %w", fn, err),
	}
}
