package iotaxa

import (
	"path/filepath"
	"testing"

	"github.com/pristineseas/psdb/internal/iotesting"
	"github.com/pristineseas/psdb/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLookupFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	dataDir := t.TempDir()
	iotesting.WriteDataFile(t, dataDir, "taxa_2024-03-01.csv", "x")
	iotesting.WriteDataFile(t, dataDir, "taxa_2024-06-15.csv", "x")
	iotesting.WriteDataFile(t, dataDir, "CHL_2024_uvs_sites.csv", "x")

	path, err := resolveLookupFile(dataDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "taxa_2024-06-15.csv"), path)
}

func TestResolveLookupFileMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	_, err := resolveLookupFile(t.TempDir())
	assert.Error(t, err)

	_, err = resolveLookupFile("")
	assert.Error(t, err)
}

func rawLookup(t *testing.T, rows ...[]string) *tabular.Table {
	t.Helper()

	tab := tabular.New("taxa", "taxon_code", "scientific_name", "status")
	for _, r := range rows {
		vals := make([]tabular.Value, len(r))
		for i, s := range r {
			if s == "" {
				vals[i] = tabular.NewNull(tabular.String)
			} else {
				vals[i] = tabular.NewString(s)
			}
		}
		require.NoError(t, tab.AppendRow(vals...))
	}
	return tab
}

func TestDedupByCode(t *testing.T) {
	raw := rawLookup(t,
		[]string{"CHRVAN", "Chromis vanderbilti", ""},
		[]string{"ACAOLI", "Acanthurus olivaceus", "accepted"},
	)

	rows, err := dedupByCode(raw)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Input order is preserved, empty status defaults to accepted.
	assert.Equal(t, "CHRVAN", rows[0].code)
	assert.Equal(t, acceptedStatus, rows[0].status)
	assert.Equal(t, "ACAOLI", rows[1].code)
}

func TestDedupByCodeAcceptedWins(t *testing.T) {
	raw := rawLookup(t,
		[]string{"CHRVAN", "Chromis vanderbilti (old)", "synonym"},
		[]string{"CHRVAN", "Chromis vanderbilti", "accepted"},
	)

	rows, err := dedupByCode(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chromis vanderbilti", rows[0].scientificName)
}

func TestDedupByCodeErrors(t *testing.T) {
	t.Run("two accepted rows", func(t *testing.T) {
		raw := rawLookup(t,
			[]string{"CHRVAN", "one", "accepted"},
			[]string{"CHRVAN", "two", "accepted"},
		)
		_, err := dedupByCode(raw)
		assert.Error(t, err)
	})

	t.Run("duplicates without accepted", func(t *testing.T) {
		raw := rawLookup(t,
			[]string{"CHRVAN", "one", "synonym"},
			[]string{"CHRVAN", "two", "synonym"},
		)
		_, err := dedupByCode(raw)
		assert.Error(t, err)
	})

	t.Run("empty code", func(t *testing.T) {
		raw := rawLookup(t, []string{"", "Chromis vanderbilti", ""})
		_, err := dedupByCode(raw)
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		raw := rawLookup(t, []string{"CHRVAN", "", ""})
		_, err := dedupByCode(raw)
		assert.Error(t, err)
	})
}

func TestBuildTable(t *testing.T) {
	rows := []parsedRow{
		{
			lookupRow: lookupRow{
				code:           "LUTBOH",
				scientificName: "Lutjanus bohar",
				status:         "accepted",
				lwA:            "0.0279",
				lwB:            "2.99",
			},
			nameID:        "b1f9...",
			canonicalName: "Lutjanus bohar",
			parseQuality:  1,
		},
		{
			lookupRow: lookupRow{
				code:           "ACAOLI",
				scientificName: "Acanthurus olivaceus",
				status:         "accepted",
			},
			nameID:       "00aa...",
			parseQuality: 1,
		},
	}

	tab := buildTable(rows)

	// Sorted by taxon code for deterministic staging.
	v, _ := tab.Cell(0, "taxon_code")
	assert.Equal(t, "ACAOLI", v.String())
	v, _ = tab.Cell(1, "taxon_code")
	assert.Equal(t, "LUTBOH", v.String())

	v, _ = tab.Cell(1, "lw_a")
	assert.Equal(t, tabular.Numeric, v.Kind())
	assert.Equal(t, "0.0279", v.String())

	// Optional fields without values stage as nulls.
	v, _ = tab.Cell(0, "canonical_name")
	assert.True(t, v.IsNull())
	v, _ = tab.Cell(0, "lw_a")
	assert.True(t, v.IsNull())
}
