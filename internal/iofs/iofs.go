package iofs

import (
	"os"

	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/templates"
)

// EnsureDirs creates the application's config, cache and log
// directories if they do not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml template to the
// config directory unless a config file already exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(
		config.ConfigFilePath(homeDir), templates.ConfigYAML,
	)
}

// EnsureExpeditionsFile writes the default expeditions.yaml template
// to the config directory unless one already exists.
func EnsureExpeditionsFile(homeDir string) error {
	return ensureFile(
		config.ExpeditionsFilePath(homeDir), templates.ExpeditionsYAML,
	)
}

// EnsureSchemasFile writes the default schemas.yaml template to the
// config directory unless one already exists.
func EnsureSchemasFile(homeDir string) error {
	return ensureFile(
		config.SchemasFilePath(homeDir), templates.SchemasYAML,
	)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}
