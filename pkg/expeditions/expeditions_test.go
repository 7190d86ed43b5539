package expeditions_test

import (
	"testing"

	"github.com/pristineseas/psdb/pkg/expeditions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *expeditions.ExpeditionsConfig {
	return &expeditions.ExpeditionsConfig{
		Expeditions: []expeditions.ExpeditionConfig{
			{
				ID:        "CHL_2024",
				Name:      "Chile Southern Patagonia",
				StartDate: "2024-03-01",
				EndDate:   "2024-03-28",
				Methods: []expeditions.MethodConfig{
					{Method: "uvs", SitesMapping: "uvs_sites.yaml"},
					{Method: "pbruv", SitesMapping: "pbruv_sites.yaml"},
				},
			},
			{
				ID: "FJI_2025",
				Methods: []expeditions.MethodConfig{
					{Method: "sub", SitesMapping: "sub_sites.yaml"},
				},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Warnings)
}

func TestValidateFatal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*expeditions.ExpeditionsConfig)
	}{
		{
			name:   "no expeditions",
			mutate: func(c *expeditions.ExpeditionsConfig) { c.Expeditions = nil },
		},
		{
			name: "bad id format",
			mutate: func(c *expeditions.ExpeditionsConfig) {
				c.Expeditions[0].ID = "chile24"
			},
		},
		{
			name: "duplicate id",
			mutate: func(c *expeditions.ExpeditionsConfig) {
				c.Expeditions[1].ID = "CHL_2024"
			},
		},
		{
			name: "no methods",
			mutate: func(c *expeditions.ExpeditionsConfig) {
				c.Expeditions[0].Methods = nil
			},
		},
		{
			name: "duplicate method",
			mutate: func(c *expeditions.ExpeditionsConfig) {
				c.Expeditions[0].Methods = append(
					c.Expeditions[0].Methods,
					expeditions.MethodConfig{Method: "uvs"},
				)
			},
		},
		{
			name: "unknown method",
			mutate: func(c *expeditions.ExpeditionsConfig) {
				c.Expeditions[0].Methods[0].Method = "trawl"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.Expeditions[0].StartDate = "03/01/2024"
	cfg.Expeditions[1].Methods[0].SitesMapping = ""

	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Warnings, 2)

	assert.Equal(t, "CHL_2024", cfg.Warnings[0].ExpeditionID)
	assert.Equal(t, "start_date", cfg.Warnings[0].Field)
	assert.Equal(t, "FJI_2025", cfg.Warnings[1].ExpeditionID)
	assert.Equal(t, "sites_mapping", cfg.Warnings[1].Field)
}

func TestFilter(t *testing.T) {
	cfg := validConfig()

	all := cfg.Filter(nil)
	assert.Len(t, all, 2)

	one := cfg.Filter([]string{"FJI_2025"})
	require.Len(t, one, 1)
	assert.Equal(t, "FJI_2025", one[0].ID)

	none := cfg.Filter([]string{"PLW_2023"})
	assert.Empty(t, none)
}

func TestMethodCodes(t *testing.T) {
	e := validConfig().Expeditions[0]

	assert.Equal(t, []string{"uvs", "pbruv"}, e.MethodCodes(nil))
	assert.Equal(t, []string{"pbruv"}, e.MethodCodes([]string{"pbruv"}))
	assert.Empty(t, e.MethodCodes([]string{"edna"}))
}

func TestMethodConfig(t *testing.T) {
	e := validConfig().Expeditions[0]

	mc, ok := e.MethodConfig("uvs")
	require.True(t, ok)
	assert.Equal(t, "uvs_sites.yaml", mc.SitesMapping)

	_, ok = e.MethodConfig("edna")
	assert.False(t, ok)
}

func TestExportDir(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		want   string
	}{
		{"defaults to data dir plus id", "", "/data/CHL_2024"},
		{"relative parent joins data dir", "raw/chile", "/data/raw/chile"},
		{"absolute parent passes through", "/exports/chile", "/exports/chile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := expeditions.ExpeditionConfig{ID: "CHL_2024", Parent: tt.parent}
			assert.Equal(t, tt.want, e.ExportDir("/data"))
		})
	}
}
