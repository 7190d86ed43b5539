package tabular_test

import (
	"testing"

	"github.com/pristineseas/psdb/pkg/tabular"
	"github.com/pristineseas/psdb/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitesSchemaYAML = `
schemas:
  - name: sites
    fields:
      - name: ps_site_id
        type: STRING
      - name: site_name
        type: STRING
        required: true
      - name: latitude
        type: NUMERIC
        required: true
      - name: exposure
        type: STRING
        allowed: [windward, leeward, lagoon]
      - name: depth_m
        type: FLOAT
`

func TestSchemasFromYAML(t *testing.T) {
	schemas, err := tabular.SchemasFromYAML([]byte(sitesSchemaYAML))
	require.NoError(t, err)
	require.Contains(t, schemas, "sites")

	s := schemas["sites"]
	assert.Equal(t, "sites", s.Name)
	assert.Equal(t,
		[]string{"ps_site_id", "site_name", "latitude", "exposure", "depth_m"},
		s.Columns(),
	)

	f, ok := s.Field("site_name")
	require.True(t, ok)
	assert.True(t, f.Required)
	assert.Equal(t, tabular.String, f.Type)

	f, ok = s.Field("latitude")
	require.True(t, ok)
	assert.Equal(t, tabular.Numeric, f.Type)

	f, ok = s.Field("exposure")
	require.True(t, ok)
	assert.True(t, f.AllowedContains("lagoon"))
	assert.False(t, f.AllowedContains("Lagoon"))

	_, ok = s.Field("no_such_field")
	assert.False(t, ok)
}

func TestSchemasFromYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing schema name",
			yaml: `
schemas:
  - fields:
      - name: a
        type: STRING
`,
		},
		{
			name: "no fields",
			yaml: `
schemas:
  - name: empty
`,
		},
		{
			name: "duplicate field",
			yaml: `
schemas:
  - name: sites
    fields:
      - name: a
        type: STRING
      - name: a
        type: STRING
`,
		},
		{
			name: "unknown type",
			yaml: `
schemas:
  - name: sites
    fields:
      - name: a
        type: BLOB
`,
		},
		{
			name: "duplicate schema",
			yaml: `
schemas:
  - name: sites
    fields:
      - name: a
        type: STRING
  - name: sites
    fields:
      - name: b
        type: STRING
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tabular.SchemasFromYAML([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSchemasTemplateParses(t *testing.T) {
	// The embedded default schema document must stay parseable and
	// must describe all four staged tables.
	schemas, err := tabular.SchemasFromYAML([]byte(templates.SchemasYAML))
	require.NoError(t, err)
	for _, name := range []string{"sites", "stations", "observations", "taxa"} {
		assert.Contains(t, schemas, name)
	}
}
