// Package iopipeline implements the normalization pipeline. It is an
// impure I/O package: it reads raw exports, runs the pure
// normalization and derivation steps, and writes the results to the
// local staging store.
package iopipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/pristineseas/psdb/internal/ioexpeditions"
	"github.com/pristineseas/psdb/internal/ioingest"
	"github.com/pristineseas/psdb/internal/iostage"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/expeditions"
	"github.com/pristineseas/psdb/pkg/lifecycle"
	"github.com/pristineseas/psdb/pkg/tabular"
)

type pipeline struct{}

// New creates the normalization pipeline.
func New() lifecycle.Pipeline {
	return &pipeline{}
}

// Run processes the configured expeditions: ingest raw exports,
// normalize against the target schemas, apply overrides, derive
// identifiers, link tables, and stage the results. A failing
// expedition is reported and skipped; Run fails only when every
// expedition fails.
func (p *pipeline) Run(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()
	slog.Info("Starting normalization pipeline")

	reg, err := ioexpeditions.New(cfg).Load()
	if err != nil {
		return err
	}
	logRegistryWarnings(reg)

	toProcess := reg.Filter(cfg.Ingest.ExpeditionIDs)
	if len(toProcess) == 0 {
		return NoExpeditionsError(cfg.Ingest.ExpeditionIDs)
	}
	slog.Info("Processing expeditions", "count", len(toProcess))

	schemas, err := loadSchemas(cfg)
	if err != nil {
		return err
	}

	st, err := iostage.New(config.StageFilePath(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer st.Close()

	ing := ioingest.New(cfg)

	successCount := 0
	errorCount := 0
	for i, exp := range toProcess {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		expStart := time.Now()

		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Expedition [%s]: %s", exp.ID, exp.Name)
		fmt.Println(strings.Repeat("─", 60))

		slog.Info("Processing expedition",
			"index", i+1,
			"total", len(toProcess),
			"expedition_id", exp.ID,
		)

		if err := p.processExpedition(ctx, cfg, ing, st, schemas, exp); err != nil {
			errorCount++
			slog.Error("Failed to process expedition",
				"expedition_id", exp.ID,
				"error", err,
			)
			continue
		}

		successCount++
		dur := time.Since(expStart)
		slog.Info("Expedition processed successfully",
			"expedition_id", exp.ID,
			"duration", gnfmt.TimeString(dur.Seconds()),
		)
		gn.Info("Completed in %s", gnfmt.TimeString(dur.Seconds()))
	}

	totalDur := time.Since(startTime)
	slog.Info("Pipeline complete",
		"success", successCount,
		"errors", errorCount,
		"total", len(toProcess),
		"duration", gnfmt.TimeString(totalDur.Seconds()),
	)
	gn.Info(`Pipeline complete
Expeditions succeeded: %d, failed %d, total %d.
		Elapsed time: <em>%s</em>
`,
		successCount,
		errorCount,
		len(toProcess),
		gnfmt.TimeString(totalDur.Seconds()),
	)

	if errorCount > 0 && successCount == 0 {
		return AllExpeditionsFailedError(errorCount)
	}
	if errorCount > 0 {
		slog.Warn("Some expeditions failed to process",
			"failed", errorCount,
			"succeeded", successCount)
	}
	return nil
}

func (p *pipeline) processExpedition(
	ctx context.Context,
	cfg *config.Config,
	ing ioingest.Ingester,
	st iostage.Stage,
	schemas map[string]*tabular.Schema,
	exp expeditions.ExpeditionConfig,
) error {
	ovr, err := loadOverrides(cfg, exp)
	if err != nil {
		return err
	}

	methods := exp.MethodCodes(cfg.Ingest.Methods)
	if len(methods) == 0 {
		return NoExpeditionsError(cfg.Ingest.Methods)
	}

	for _, method := range methods {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		if err := p.processMethod(
			cfg, ing, st, schemas, exp, ovr, method,
		); err != nil {
			return fmt.Errorf("method %s: %w", method, err)
		}
	}

	return nil
}

func logRegistryWarnings(reg *expeditions.ExpeditionsConfig) {
	for _, w := range reg.Warnings {
		slog.Warn("Registry warning",
			"expedition_id", w.ExpeditionID,
			"field", w.Field,
			"message", w.Message,
			"suggestion", w.Suggestion,
		)
	}
}
