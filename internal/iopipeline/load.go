package iopipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/expeditions"
	"github.com/pristineseas/psdb/pkg/normalize"
	"github.com/pristineseas/psdb/pkg/overrides"
	"github.com/pristineseas/psdb/pkg/tabular"
)

// Schema names every pipeline run expects in schemas.yaml.
const (
	schemaSites        = "sites"
	schemaStations     = "stations"
	schemaObservations = "observations"
)

// loadSchemas reads the target schemas from the config directory and
// checks that the pipeline's three tables are declared.
func loadSchemas(
	cfg *config.Config,
) (map[string]*tabular.Schema, error) {
	path := config.SchemasFilePath(cfg.HomeDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SchemasError(path, err)
	}

	schemas, err := tabular.SchemasFromYAML(data)
	if err != nil {
		return nil, SchemasError(path, err)
	}

	for _, name := range []string{
		schemaSites, schemaStations, schemaObservations,
	} {
		if _, ok := schemas[name]; !ok {
			return nil, SchemasError(path,
				fmt.Errorf("schema %s is not declared", name))
		}
	}

	return schemas, nil
}

// loadMapping reads a column mapping document. An empty path yields
// the identity mapping: every schema field maps to the same-named
// source column.
func loadMapping(
	cfg *config.Config,
	exp expeditions.ExpeditionConfig,
	path string,
	schema *tabular.Schema,
) (*normalize.Mapping, error) {
	if path == "" {
		return normalize.IdentityMapping(
			schema.Name, schema.Columns(), siteNameCol,
		), nil
	}

	full := resolvePath(cfg, exp, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, MappingError(full, err)
	}

	mapping, err := normalize.MappingFromYAML(data)
	if err != nil {
		return nil, MappingError(full, err)
	}

	return mapping, nil
}

// loadOverrides reads the expedition's overrides document, if it
// declares one.
func loadOverrides(
	cfg *config.Config, exp expeditions.ExpeditionConfig,
) (*overrides.Set, error) {
	if exp.OverridesFile == "" {
		return nil, nil
	}

	full := resolvePath(cfg, exp, exp.OverridesFile)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, OverridesError(exp.ID, err)
	}

	set, err := overrides.FromYAML(data)
	if err != nil {
		return nil, OverridesError(exp.ID, err)
	}

	return set, nil
}

// resolvePath resolves a registry-relative mapping or overrides path
// against the expedition's export directory. Absolute paths pass
// through.
func resolvePath(
	cfg *config.Config, exp expeditions.ExpeditionConfig, path string,
) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(exp.ExportDir(cfg.Ingest.DataDir), path)
}
