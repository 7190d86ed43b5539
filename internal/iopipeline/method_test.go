package iopipeline

import (
	"testing"

	"github.com/pristineseas/psdb/pkg/derive"
	"github.com/pristineseas/psdb/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillConstant(t *testing.T) {
	t.Run("adds missing column", func(t *testing.T) {
		tab := tabular.New("export", "site_name")
		require.NoError(t, tab.AppendRow(tabular.NewString("North Reef")))

		fillConstant(tab, "expedition_id", "CHL_2024")

		v, ok := tab.Cell(0, "expedition_id")
		require.True(t, ok)
		assert.Equal(t, "CHL_2024", v.String())
	})

	t.Run("fills nulls, keeps explicit values", func(t *testing.T) {
		tab := tabular.New("export", "expedition_id")
		require.NoError(t, tab.AppendRow(tabular.NewNull(tabular.String)))
		require.NoError(t, tab.AppendRow(tabular.NewString("FJI_2025")))

		fillConstant(tab, "expedition_id", "CHL_2024")

		v, _ := tab.Cell(0, "expedition_id")
		assert.Equal(t, "CHL_2024", v.String())
		v, _ = tab.Cell(1, "expedition_id")
		assert.Equal(t, "FJI_2025", v.String())
	})
}

func TestProjectColumns(t *testing.T) {
	tab := tabular.New("sites", "site_name", "ps_site_id", "latitude")
	require.NoError(t, tab.AppendRow(
		tabular.NewString("North Reef"),
		tabular.NewString("CHL_2024_uvs_001"),
		tabular.NewFloat(-17.5),
	))

	got := projectColumns(tab, "sites", "site_name", "ps_site_id")

	assert.Equal(t, []string{"site_name", "ps_site_id"}, got.Columns())
	require.Equal(t, 1, got.Len())
	v, _ := got.Cell(0, "ps_site_id")
	assert.Equal(t, "CHL_2024_uvs_001", v.String())

	// Missing columns project to string nulls rather than failing.
	got = projectColumns(tab, "sites", "site_name", "no_such")
	v, _ = got.Cell(0, "no_such")
	assert.True(t, v.IsNull())
}

func TestBuildStations(t *testing.T) {
	schemas, err := tabular.SchemasFromYAML([]byte(`
schemas:
  - name: stations
    fields:
      - name: ps_station_id
        type: STRING
      - name: ps_site_id
        type: STRING
      - name: site_name
        type: STRING
      - name: depth_m
        type: FLOAT
      - name: rig
        type: STRING
`))
	require.NoError(t, err)

	linked := tabular.New("observations",
		derive.ColStationID, derive.ColSiteID, "site_name", "depth_m",
		"taxon_code")
	addObs := func(station, site, name string, depth float64, code string) {
		require.NoError(t, linked.AppendRow(
			tabular.NewString(station),
			tabular.NewString(site),
			tabular.NewString(name),
			tabular.NewFloat(depth),
			tabular.NewString(code),
		))
	}
	addObs("CHL_2024_uvs_001_20m", "CHL_2024_uvs_001", "North Reef", 20, "CHRVAN")
	addObs("CHL_2024_uvs_001_10m", "CHL_2024_uvs_001", "North Reef", 10, "ACAOLI")
	addObs("CHL_2024_uvs_001_10m", "CHL_2024_uvs_001", "North Reef", 10, "LUTBOH")

	stations := buildStations(linked, schemas["stations"])

	// One station row per distinct id, sorted, columns restricted to
	// the schema fields the linked table actually has.
	require.Equal(t, 2, stations.Len())
	assert.Equal(t,
		[]string{"ps_station_id", "ps_site_id", "site_name", "depth_m"},
		stations.Columns(),
	)

	v, _ := stations.Cell(0, derive.ColStationID)
	assert.Equal(t, "CHL_2024_uvs_001_10m", v.String())
	v, _ = stations.Cell(1, derive.ColStationID)
	assert.Equal(t, "CHL_2024_uvs_001_20m", v.String())

	v, _ = stations.Cell(0, "depth_m")
	assert.InDelta(t, 10, v.Float64(), 0.0001)
}
