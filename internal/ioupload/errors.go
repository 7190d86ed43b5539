package ioupload

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/pkg/errcode"
)

func DuplicateExpeditionError(expeditionID string) error {
	msg := `Expedition <em>%s</em> is already in the warehouse

<em>How to fix:</em>
  1. To replace the previous upload: <em>psdb upload --replace</em>
  2. To keep it, exclude the expedition with <em>--expeditions</em>`

	vars := []any{expeditionID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadDuplicateExpeditionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: expedition %s already uploaded",
			fn, expeditionID),
	}
}

func NothingStagedError() error {
	msg := `Nothing is staged for upload

<em>How to fix:</em>
  1. Run <em>psdb normalize</em> to stage expedition tables
  2. Run <em>psdb taxa</em> to stage the taxa lookup`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageReadError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: staging store is empty", fn),
	}
}

func UnknownExpeditionError(expeditionID string) error {
	msg := `Staged expedition <em>%s</em> is not in the registry

<em>How to fix:</em>
  1. Add the expedition to <em>expeditions.yaml</em>
  2. Or remove its staged tables and re-run the pipeline`

	vars := []any{expeditionID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IngestExpeditionsConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: expedition %s not registered",
			fn, expeditionID),
	}
}
