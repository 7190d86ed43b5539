package iopipeline

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/pkg/errcode"
)

func CancelledError(err error) error {
	msg := "Pipeline cancelled"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: pipeline cancelled: %w", fn, err),
	}
}

func AllExpeditionsFailedError(count int) error {
	msg := `All expeditions failed to process

<em>How to fix:</em>
  1. Check the log file for per-expedition errors
  2. Verify the data directory holds the expected exports
  3. Verify expeditions.yaml matches the export filenames`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineAllExpeditionsFailedError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: all %d expeditions failed",
			fn, count),
	}
}

func NoExpeditionsError(requested []string) error {
	msg := `No expeditions selected

<em>Possible causes:</em>
  - Requested IDs are not in expeditions.yaml
  - Requested methods are not declared by the expedition

<em>How to fix:</em>
  1. Check <em>expeditions.yaml</em> in the config directory
  2. Review the <em>--expeditions</em> and <em>--methods</em> flags`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestConfigError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: nothing to process for %v",
			fn, requested),
	}
}

func SchemasError(path string, err error) error {
	msg := "Cannot load target schemas from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load schemas %s: %w",
			fn, path, err),
	}
}

func MappingError(path string, err error) error {
	msg := "Cannot load column mapping <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot load mapping %s: %w",
			fn, path, err),
	}
}

func OverridesError(expeditionID string, err error) error {
	msg := "Cannot apply overrides for <em>%s</em>"
	vars := []any{expeditionID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineOverridesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: overrides for %s: %w",
			fn, expeditionID, err),
	}
}
