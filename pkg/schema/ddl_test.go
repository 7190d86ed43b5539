package schema_test

import (
	"strings"
	"testing"

	"github.com/pristineseas/psdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		model schema.DDLGenerator
		want  string
	}{
		{model: schema.Expedition{}, want: "expeditions"},
		{model: schema.Site{}, want: "sites"},
		{model: schema.Station{}, want: "stations"},
		{model: schema.Observation{}, want: "observations"},
		{model: schema.Taxon{}, want: "taxa"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.model.TableName())
	}
}

func TestTableDDL(t *testing.T) {
	ddl := schema.Site{}.TableDDL()
	assert.Contains(t, ddl, "CREATE TABLE sites")
	assert.Contains(t, ddl, "ps_site_id VARCHAR(50) PRIMARY KEY")
	assert.Contains(t, ddl, "expedition_id")

	ddl = schema.Observation{}.TableDDL()
	assert.Contains(t, ddl, "CREATE TABLE observations")
	assert.Contains(t, ddl, "observation_id")
}

func TestIndexDDLIdempotent(t *testing.T) {
	// Migrate re-runs all index statements, so every one of them must
	// tolerate already existing.
	for _, m := range schema.AllModels() {
		gen, ok := m.(schema.DDLGenerator)
		require.True(t, ok)
		for _, stmt := range gen.IndexDDL() {
			assert.True(t,
				strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS"),
				"statement %q", stmt,
			)
			assert.Contains(t, stmt, gen.TableName())
		}
	}
}

func TestColumnNames(t *testing.T) {
	cols := schema.ColumnNames(schema.Site{})
	assert.Equal(t, "ps_site_id", cols[0])
	assert.Contains(t, cols, "expedition_id")
	assert.Contains(t, cols, "site_name")

	cols = schema.ColumnNames(schema.Expedition{})
	assert.Equal(t,
		[]string{"id", "name", "country", "vessel", "leader",
			"start_date", "end_date", "updated_at"},
		cols,
	)
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	require.Len(t, models, 5)
	for _, m := range models {
		_, ok := m.(schema.DDLGenerator)
		assert.True(t, ok)
	}
}
