package overrides_test

import (
	"testing"

	"github.com/pristineseas/psdb/pkg/normalize"
	"github.com/pristineseas/psdb/pkg/overrides"
	"github.com/pristineseas/psdb/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overridesYAML = `
version: 3
overrides:
  - expedition_id: CHL_2024
    site_name: North Reef
    reason: "GPS logger clock drifted, position re-read from track"
    fields:
      latitude: "-17.5335"
      longitude: "-149.8102"
  - expedition_id: FJI_2025
    site_name: Lagoon
    reason: "depth recorded in feet"
    fields:
      depth_m: "12.2"
`

func testSchema(t *testing.T) *tabular.Schema {
	t.Helper()
	schemas, err := tabular.SchemasFromYAML([]byte(`
schemas:
  - name: sites
    fields:
      - name: site_name
        type: STRING
        required: true
      - name: latitude
        type: FLOAT
      - name: longitude
        type: FLOAT
      - name: depth_m
        type: FLOAT
`))
	require.NoError(t, err)
	return schemas["sites"]
}

func TestFromYAML(t *testing.T) {
	set, err := overrides.FromYAML([]byte(overridesYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, set.Version)
	assert.Len(t, set.Overrides, 2)
}

func TestFromYAMLValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing reason",
			yaml: `
overrides:
  - expedition_id: CHL_2024
    site_name: North Reef
    fields:
      latitude: "-17.5"
`,
		},
		{
			name: "missing site name",
			yaml: `
overrides:
  - expedition_id: CHL_2024
    reason: "fix"
    fields:
      latitude: "-17.5"
`,
		},
		{
			name: "no fields",
			yaml: `
overrides:
  - expedition_id: CHL_2024
    site_name: North Reef
    reason: "fix"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := overrides.FromYAML([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	set, err := overrides.FromYAML([]byte(overridesYAML))
	require.NoError(t, err)

	tab := tabular.New("sites", "site_name", "latitude", "longitude", "depth_m")
	require.NoError(t, tab.AppendRow(
		tabular.NewString("North Reef"),
		tabular.NewFloat(-17.9999),
		tabular.NewFloat(-149.8102),
		tabular.NewFloat(10),
	))
	require.NoError(t, tab.AppendRow(
		tabular.NewString("South Pass"),
		tabular.NewFloat(-17.6),
		tabular.NewFloat(-149.9),
		tabular.NewFloat(15),
	))

	report := &normalize.Report{Table: "sites"}
	res, err := set.Apply(tab, testSchema(t), "CHL_2024", report)
	require.NoError(t, err)

	// Matched row is corrected, values typed against the schema.
	v, _ := res.Cell(0, "latitude")
	assert.Equal(t, tabular.Float, v.Kind())
	assert.InDelta(t, -17.5335, v.Float64(), 0.0001)

	// Unmatched rows and the input table stay untouched.
	v, _ = res.Cell(1, "latitude")
	assert.InDelta(t, -17.6, v.Float64(), 0.0001)
	v, _ = tab.Cell(0, "latitude")
	assert.InDelta(t, -17.9999, v.Float64(), 0.0001)

	// Every replacement lands in the audit trail.
	require.Len(t, report.Issues, 2)
	for _, issue := range report.Issues {
		assert.Equal(t, "North Reef", issue.RowKey)
		assert.Contains(t, issue.Issue, "override applied")
	}
}

func TestApplyWrongExpeditionIsNoop(t *testing.T) {
	set, err := overrides.FromYAML([]byte(overridesYAML))
	require.NoError(t, err)

	tab := tabular.New("sites", "site_name", "latitude")
	require.NoError(t, tab.AppendRow(
		tabular.NewString("North Reef"), tabular.NewFloat(-17.9999),
	))

	report := &normalize.Report{Table: "sites"}
	res, err := set.Apply(tab, testSchema(t), "PLW_2023", report)
	require.NoError(t, err)

	v, _ := res.Cell(0, "latitude")
	assert.InDelta(t, -17.9999, v.Float64(), 0.0001)
	assert.True(t, report.Empty())
}

func TestApplyUnknownField(t *testing.T) {
	set, err := overrides.FromYAML([]byte(`
overrides:
  - expedition_id: CHL_2024
    site_name: North Reef
    reason: "typo"
    fields:
      no_such_field: "x"
`))
	require.NoError(t, err)

	tab := tabular.New("sites", "site_name")
	require.NoError(t, tab.AppendRow(tabular.NewString("North Reef")))

	report := &normalize.Report{Table: "sites"}
	_, err = set.Apply(tab, testSchema(t), "CHL_2024", report)
	assert.Error(t, err)
}
