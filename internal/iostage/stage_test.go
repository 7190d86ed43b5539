package iostage_test

import (
	"testing"

	"github.com/pristineseas/psdb/internal/iostage"
	"github.com/pristineseas/psdb/internal/iotesting"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/normalize"
	"github.com/pristineseas/psdb/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStage(t *testing.T) iostage.Stage {
	t.Helper()

	home := iotesting.SetupTempHome(t)
	st, err := iostage.New(config.StageFilePath(home))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func stagedSites(t *testing.T) *tabular.Table {
	t.Helper()

	tab := tabular.New("sites",
		"ps_site_id", "site_name", "latitude", "depth_m", "transect_count")
	require.NoError(t, tab.AppendRow(
		tabular.NewString("CHL_2024_uvs_001"),
		tabular.NewString("North Reef"),
		tabular.NewNumeric("-17.53278"),
		tabular.NewFloat(10.5),
		tabular.NewInt(4),
	))
	require.NoError(t, tab.AppendRow(
		tabular.NewString("CHL_2024_uvs_002"),
		tabular.NewString("Lagoon"),
		tabular.NewNumeric("-17.601"),
		tabular.NewNull(tabular.Float),
		tabular.NewNull(tabular.Integer),
	))
	return tab
}

func TestSaveLoadTableRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	st := openStage(t)
	tab := stagedSites(t)

	require.NoError(t, st.SaveTable("CHL_2024", "uvs", tab))

	got, err := st.LoadTable("CHL_2024", "uvs", "sites")
	require.NoError(t, err)

	// The staged table reloads byte-identical.
	assert.Equal(t, tab.Checksum(), got.Checksum())
	assert.Equal(t, tab.Columns(), got.Columns())

	v, _ := got.Cell(1, "depth_m")
	assert.True(t, v.IsNull())
	assert.Equal(t, tabular.Float, v.Kind())
	v, _ = got.Cell(0, "transect_count")
	assert.Equal(t, int64(4), v.Int64())
}

func TestSaveTableReplacesPrevious(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	st := openStage(t)
	tab := stagedSites(t)
	require.NoError(t, st.SaveTable("CHL_2024", "uvs", tab))

	smaller := tabular.New("sites", "ps_site_id", "site_name")
	require.NoError(t, smaller.AppendRow(
		tabular.NewString("CHL_2024_uvs_001"),
		tabular.NewString("North Reef"),
	))
	require.NoError(t, st.SaveTable("CHL_2024", "uvs", smaller))

	got, err := st.LoadTable("CHL_2024", "uvs", "sites")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, smaller.Checksum(), got.Checksum())
}

func TestTablesListing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	st := openStage(t)
	tab := stagedSites(t)
	require.NoError(t, st.SaveTable("CHL_2024", "uvs", tab))
	require.NoError(t,
		st.SaveTable("FJI_2025", "sub", tab.Clone().Rename("stations")))

	all, err := st.Tables("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := st.Tables("CHL_2024")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "CHL_2024", one[0].ExpeditionID)
	assert.Equal(t, "uvs", one[0].Method)
	assert.Equal(t, "sites", one[0].Name)
	assert.Equal(t, 2, one[0].RowCount)
	assert.Equal(t, tab.Checksum(), one[0].Checksum)
	assert.NotEmpty(t, one[0].StagedAt)
}

func TestReports(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	st := openStage(t)

	rep := &normalize.Report{Table: "sites"}
	rep.Add("North Reef", "latitude", "required field is null")
	require.NoError(t, st.SaveReport("CHL_2024", "uvs", rep))

	got, err := st.LoadReports("CHL_2024")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sites", got[0].Table)
	require.Len(t, got[0].Issues, 1)
	assert.Equal(t, "North Reef", got[0].Issues[0].RowKey)
}

func TestDeleteExpedition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	st := openStage(t)
	tab := stagedSites(t)
	require.NoError(t, st.SaveTable("CHL_2024", "uvs", tab))
	require.NoError(t, st.SaveTable("FJI_2025", "sub", tab))

	require.NoError(t, st.DeleteExpedition("CHL_2024"))

	_, err := st.LoadTable("CHL_2024", "uvs", "sites")
	assert.Error(t, err)

	left, err := st.Tables("")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "FJI_2025", left[0].ExpeditionID)
}

func TestStagePersistsAcrossOpens(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := iotesting.SetupTempHome(t)
	path := config.StageFilePath(home)

	st, err := iostage.New(path)
	require.NoError(t, err)
	tab := stagedSites(t)
	require.NoError(t, st.SaveTable("CHL_2024", "uvs", tab))
	require.NoError(t, st.Close())

	st, err = iostage.New(path)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.LoadTable("CHL_2024", "uvs", "sites")
	require.NoError(t, err)
	assert.Equal(t, tab.Checksum(), got.Checksum())
}
