package ioexpeditions

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/pkg/errcode"
)

// ExpeditionsConfigError creates an error for when expeditions.yaml
// cannot be loaded.
func ExpeditionsConfigError(path string, err error) error {
	msg := `Cannot load expedition registry

<em>Registry file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Invalid expedition entry

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Delete the file to regenerate the default template`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.IngestExpeditionsConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load expedition registry: %w", err),
	}
}
