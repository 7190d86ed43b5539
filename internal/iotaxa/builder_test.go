package iotaxa

import (
	"context"
	"testing"

	"github.com/pristineseas/psdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptJobsNumber(2),
	})
	return cfg
}

func TestParseNames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	rows := []lookupRow{
		{code: "LUTBOH", scientificName: "Lutjanus bohar", status: "accepted"},
		{code: "ACAOLI", scientificName: "Acanthurus olivaceus", status: "accepted"},
	}

	b := &builder{}
	res, err := b.parseNames(context.Background(), parseConfig(t), rows)
	require.NoError(t, err)
	require.Len(t, res, 2)

	// Workers deliver out of order; results come back sorted by code.
	assert.Equal(t, "ACAOLI", res[0].code)
	assert.Equal(t, "Acanthurus olivaceus", res[0].canonicalName)
	assert.Equal(t, "LUTBOH", res[1].code)
	assert.Equal(t, "Lutjanus bohar", res[1].canonicalName)
	assert.NotEmpty(t, res[0].nameID)
}

// A cancelled run must surface an error instead of returning a
// partial result as success.
func TestParseNamesCancelled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	rows := []lookupRow{
		{code: "LUTBOH", scientificName: "Lutjanus bohar", status: "accepted"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &builder{}
	_, err := b.parseNames(ctx, parseConfig(t), rows)
	assert.Error(t, err)
}
