// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application
// configuration.
//
//go:embed config.yaml
var ConfigYAML string

// ExpeditionsYAML contains the default expeditions.yaml registry
// template.
//
//go:embed expeditions.yaml
var ExpeditionsYAML string

// SchemasYAML contains the target table schemas for normalized
// expedition data.
//
//go:embed schemas.yaml
var SchemasYAML string
