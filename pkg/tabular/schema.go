package tabular

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field describes one column of a target schema.
type Field struct {
	// Name is the target column name.
	Name string `yaml:"name"`

	// Type is the semantic type of the column.
	Type Type `yaml:"type"`

	// Required marks columns that must be non-null in every row.
	Required bool `yaml:"required,omitempty"`

	// Allowed restricts the column to a controlled vocabulary.
	// Empty means any value.
	Allowed []string `yaml:"allowed,omitempty"`
}

// AllowedContains reports whether s is in the field's controlled
// vocabulary. Always true when no vocabulary is declared.
func (f Field) AllowedContains(s string) bool {
	if len(f.Allowed) == 0 {
		return true
	}
	for _, a := range f.Allowed {
		if a == s {
			return true
		}
	}
	return false
}

// Schema is an ordered field list describing one target table.
// Schemas are data, not logic: they are loaded from YAML documents and
// the normalizer validates against them without code changes.
type Schema struct {
	// Name is the target table name.
	Name string `yaml:"name"`

	// Fields is the ordered column list.
	Fields []Field `yaml:"fields"`
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the field names in schema order.
func (s *Schema) Columns() []string {
	res := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		res[i] = f.Name
	}
	return res
}

// SchemaFile is a YAML document holding one or more named schemas.
type SchemaFile struct {
	Schemas []Schema `yaml:"schemas"`
}

// SchemasFromYAML parses a schema document. Every schema must have a
// name and at least one field; duplicate field names are rejected.
func SchemasFromYAML(data []byte) (map[string]*Schema, error) {
	var file SchemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse schema document: %w", err)
	}

	res := make(map[string]*Schema, len(file.Schemas))
	for i := range file.Schemas {
		s := file.Schemas[i]
		if s.Name == "" {
			return nil, fmt.Errorf("schema %d has no name", i)
		}
		if len(s.Fields) == 0 {
			return nil, fmt.Errorf("schema %s has no fields", s.Name)
		}
		seen := make(map[string]bool, len(s.Fields))
		for _, f := range s.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("schema %s has an unnamed field", s.Name)
			}
			if seen[f.Name] {
				return nil, fmt.Errorf(
					"schema %s: duplicate field %s", s.Name, f.Name,
				)
			}
			seen[f.Name] = true
		}
		if _, ok := res[s.Name]; ok {
			return nil, fmt.Errorf("duplicate schema %s", s.Name)
		}
		res[s.Name] = &file.Schemas[i]
	}
	return res, nil
}

// UnmarshalYAML decodes a type from its schema file name (STRING,
// INTEGER, FLOAT, BOOLEAN, DATE, TIME, NUMERIC).
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	res, ok := ParseType(s)
	if !ok {
		return fmt.Errorf("unknown field type %q", s)
	}
	*t = res
	return nil
}

// MarshalYAML encodes the type name for schema round-trips.
func (t Type) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
