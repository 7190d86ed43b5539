package normalize

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColumnMapping maps one source column onto one target schema field,
// optionally through a named converter.
type ColumnMapping struct {
	// Source is the raw spreadsheet column name.
	Source string `yaml:"source"`

	// Target is the schema field the column feeds.
	Target string `yaml:"target"`

	// Convert names a converter (ddm_to_decimal, time_12h). Empty
	// means coercion to the target field's type.
	Convert string `yaml:"convert,omitempty"`
}

// Mapping is the declarative description of how one raw export maps
// onto a target schema. Mappings are data, loaded per expedition and
// method; the normalizer itself never hard-codes column names.
type Mapping struct {
	// Schema names the target schema the mapping feeds.
	Schema string `yaml:"schema"`

	// RowKey is the target field used to identify rows in the issue
	// report, typically the site name. Empty falls back to row
	// numbers.
	RowKey string `yaml:"row_key,omitempty"`

	// Columns is the source → target column list.
	Columns []ColumnMapping `yaml:"columns"`
}

// bySource returns the mapping entry feeding a target field.
func (m *Mapping) byTarget(target string) (ColumnMapping, bool) {
	for _, cm := range m.Columns {
		if cm.Target == target {
			return cm, true
		}
	}
	return ColumnMapping{}, false
}

// MappingFromYAML parses a mapping document. Duplicate targets are
// rejected; a field fed by two source columns has no deterministic
// output.
func MappingFromYAML(data []byte) (*Mapping, error) {
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("cannot parse mapping document: %w", err)
	}
	seen := make(map[string]bool, len(m.Columns))
	for _, cm := range m.Columns {
		if cm.Source == "" || cm.Target == "" {
			return nil, fmt.Errorf(
				"mapping for %s: source and target are required", m.Schema,
			)
		}
		if seen[cm.Target] {
			return nil, fmt.Errorf(
				"mapping for %s: target %s mapped twice", m.Schema, cm.Target,
			)
		}
		seen[cm.Target] = true
	}
	return &m, nil
}

// IdentityMapping maps every field of a schema onto a source column of
// the same name. Used for tables already in target shape, where
// normalization must be a no-op.
func IdentityMapping(schemaName string, fields []string, rowKey string) *Mapping {
	m := &Mapping{Schema: schemaName, RowKey: rowKey}
	for _, f := range fields {
		m.Columns = append(m.Columns, ColumnMapping{Source: f, Target: f})
	}
	return m
}
