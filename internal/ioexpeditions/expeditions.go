// Package ioexpeditions loads the expedition registry from
// expeditions.yaml in the config directory.
package ioexpeditions

import (
	"os"

	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/expeditions"
	"gopkg.in/yaml.v3"
)

type ioexpeditions struct {
	cfg *config.Config
}

// New creates an expeditions.Expeditions backed by the registry file
// in the config directory.
func New(cfg *config.Config) expeditions.Expeditions {
	res := ioexpeditions{cfg: cfg}
	return &res
}

// Load reads, parses and validates the expedition registry. Fatal
// registry problems (duplicate IDs, unknown methods) are returned as
// errors; softer problems end up in the config's Warnings.
func (e *ioexpeditions) Load() (*expeditions.ExpeditionsConfig, error) {
	path := config.ExpeditionsFilePath(e.cfg.HomeDir)
	res, err := loadExpeditionsConfig(path)
	if err != nil {
		return nil, ExpeditionsConfigError(path, err)
	}
	return res, nil
}

func loadExpeditionsConfig(
	path string,
) (*expeditions.ExpeditionsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var res expeditions.ExpeditionsConfig
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, err
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	return &res, nil
}
