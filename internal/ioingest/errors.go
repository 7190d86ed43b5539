package ioingest

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/pkg/errcode"
)

func ConfigError() error {
	msg := `Data directory is not configured

<em>How to fix:</em>
  1. Set <em>ingest_data_dir</em> in the config file, or
  2. Set the <em>PSDB_INGEST_DATA_DIR</em> environment variable, or
  3. Pass <em>--data-dir</em> on the command line`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestConfigError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: data directory not set", fn),
	}
}

func FileNotFoundError(
	expeditionID, method, kind string, err error,
) error {
	msg := "Cannot find <em>%s</em> export for <em>%s %s</em>"
	vars := []any{kind, expeditionID, method}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestFileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no %s export for %s %s: %w",
			fn, kind, expeditionID, method, err),
	}
}

func ReadError(path string, err error) error {
	msg := "Cannot read export <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}
