// Package ioingest reads raw expedition exports from each
// expedition's export directory. Exports arrive either as CSV files
// or as SQLite workbooks; both come back as untyped tables for the
// normalizer.
package ioingest

import (
	"log/slog"

	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/expeditions"
	"github.com/pristineseas/psdb/pkg/tabular"
)

// Kind names the two tables a method export carries.
const (
	KindSites        = "sites"
	KindObservations = "observations"
)

// Ingester resolves and reads raw exports for one expedition method.
type Ingester interface {
	// Read returns the requested table of the expedition's method
	// export, located in the expedition's export directory. Cells
	// are untyped strings.
	Read(
		exp *expeditions.ExpeditionConfig, method, kind string,
	) (*tabular.Table, error)
}

type ingester struct {
	cfg *config.Config
}

// New creates an Ingester reading from the configured data directory.
func New(cfg *config.Config) Ingester {
	return &ingester{cfg: cfg}
}

func (ing *ingester) Read(
	exp *expeditions.ExpeditionConfig, method, kind string,
) (*tabular.Table, error) {
	dataDir := ing.cfg.Ingest.DataDir
	if dataDir == "" {
		return nil, ConfigError()
	}
	expeditionID := exp.ID

	path, warning, err := resolveExportFile(
		exp.ExportDir(dataDir), expeditionID, method, kind,
	)
	if err != nil {
		return nil, FileNotFoundError(expeditionID, method, kind, err)
	}
	if warning != "" {
		slog.Warn("Multiple exports matched",
			"expedition", expeditionID,
			"method", method,
			"detail", warning,
		)
	}

	var tab *tabular.Table
	if isWorkbook(path) {
		db, err := openWorkbook(path)
		if err != nil {
			return nil, ReadError(path, err)
		}
		defer db.Close()

		tab, err = readWorkbookTable(db, path, kind)
		if err != nil {
			return nil, ReadError(path, err)
		}
	} else {
		tab, err = readCSV(path, kind)
		if err != nil {
			return nil, ReadError(path, err)
		}
	}

	slog.Debug("Read raw export",
		"expedition", expeditionID,
		"method", method,
		"kind", kind,
		"rows", tab.Len(),
		"file", path,
	)

	return tab, nil
}
