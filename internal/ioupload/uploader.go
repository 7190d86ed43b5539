// Package ioupload moves staged expedition tables into the PostgreSQL
// warehouse. Appends go through the COPY protocol in batches; an
// expedition that is already in the warehouse is refused unless
// replace semantics are requested.
package ioupload

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/pristineseas/psdb/internal/iodb"
	"github.com/pristineseas/psdb/internal/ioexpeditions"
	"github.com/pristineseas/psdb/internal/iostage"
	"github.com/pristineseas/psdb/internal/iotaxa"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/db"
	"github.com/pristineseas/psdb/pkg/expeditions"
	"github.com/pristineseas/psdb/pkg/lifecycle"
)

// Upload order respects foreign-key direction: lookup and parents
// before facts.
var tableOrder = []string{"sites", "stations", "observations"}

type uploader struct{}

// New creates the warehouse uploader.
func New() lifecycle.Uploader {
	return &uploader{}
}

// Upload appends all staged tables to the warehouse. The staged taxa
// lookup is replaced wholesale; expedition tables are appended, or
// replaced when the configuration asks for it.
func (u *uploader) Upload(
	ctx context.Context, op db.Operator, cfg *config.Config,
) error {
	if op.Pool() == nil {
		return iodb.NotConnectedError()
	}

	startTime := time.Now()
	batchID := uuid.New().String()
	slog.Info("Starting warehouse upload", "batch_id", batchID)

	st, err := iostage.New(config.StageFilePath(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer st.Close()

	staged, err := st.Tables("")
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		return NothingStagedError()
	}

	reg, err := ioexpeditions.New(cfg).Load()
	if err != nil {
		return err
	}

	var total int64

	n, err := u.uploadTaxa(ctx, op, cfg, st, staged)
	if err != nil {
		return err
	}
	total += n

	byExpedition := groupStaged(staged, cfg.Ingest.ExpeditionIDs)
	ids := make([]string, 0, len(byExpedition))
	for id := range byExpedition {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := u.uploadExpedition(
			ctx, op, cfg, st, reg, id, byExpedition[id],
		)
		if err != nil {
			return err
		}
		total += n
	}

	dur := time.Since(startTime)
	slog.Info("Upload complete",
		"batch_id", batchID,
		"rows", total,
		"expeditions", len(ids),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(`Upload complete
Appended <em>%s</em> rows for %d expeditions in <em>%s</em>
`,
		humanize.Comma(total),
		len(ids),
		gnfmt.TimeString(dur.Seconds()),
	)

	return nil
}

// uploadTaxa replaces the warehouse taxa lookup with the staged one,
// when a staged lookup exists.
func (u *uploader) uploadTaxa(
	ctx context.Context,
	op db.Operator,
	cfg *config.Config,
	st iostage.Stage,
	staged []iostage.StagedTable,
) (int64, error) {
	found := false
	for _, s := range staged {
		if s.ExpeditionID == iotaxa.StageExpeditionID &&
			s.Name == "taxa" {
			found = true
			break
		}
	}
	if !found {
		return 0, nil
	}

	tab, err := st.LoadTable(
		iotaxa.StageExpeditionID, iotaxa.StageMethod, "taxa",
	)
	if err != nil {
		return 0, err
	}

	gn.Info("Replacing taxa lookup (<em>%s</em> rows)",
		humanize.Comma(int64(tab.Len())))

	// The lookup is fully derived; replacing it loses nothing.
	if _, err := op.Pool().Exec(ctx, "DELETE FROM taxa"); err != nil {
		return 0, iodb.AppendError("taxa", err)
	}

	return appendTable(ctx, op, cfg, "taxa", "", tab)
}

// uploadExpedition moves one expedition's staged tables into the
// warehouse, guarding against accidental duplication.
func (u *uploader) uploadExpedition(
	ctx context.Context,
	op db.Operator,
	cfg *config.Config,
	st iostage.Stage,
	reg *expeditions.ExpeditionsConfig,
	expeditionID string,
	staged []iostage.StagedTable,
) (int64, error) {
	uploaded, err := op.ExpeditionUploaded(ctx, "sites", expeditionID)
	if err != nil {
		return 0, err
	}
	if uploaded && !cfg.Upload.Replace {
		return 0, DuplicateExpeditionError(expeditionID)
	}
	if uploaded {
		gn.Info("Replacing expedition <em>%s</em>", expeditionID)
		// Children first.
		for i := len(tableOrder) - 1; i >= 0; i-- {
			n, err := op.DeleteExpedition(
				ctx, tableOrder[i], expeditionID,
			)
			if err != nil {
				return 0, err
			}
			slog.Info("Deleted previous rows",
				"table", tableOrder[i],
				"expedition_id", expeditionID,
				"rows", n,
			)
		}
	}

	if err := upsertExpeditionRow(ctx, op, reg, expeditionID); err != nil {
		return 0, err
	}

	gn.Info("Uploading expedition <em>%s</em>", expeditionID)

	var total int64
	for _, name := range tableOrder {
		for _, s := range staged {
			if s.Name != name {
				continue
			}
			tab, err := st.LoadTable(s.ExpeditionID, s.Method, s.Name)
			if err != nil {
				return 0, err
			}
			n, err := appendTable(
				ctx, op, cfg, s.Name, s.ExpeditionID, tab,
			)
			if err != nil {
				return 0, err
			}
			total += n
		}
	}

	return total, nil
}

// groupStaged splits staged tables by expedition, skipping the global
// taxa entry and honoring the configured expedition filter.
func groupStaged(
	staged []iostage.StagedTable, only []string,
) map[string][]iostage.StagedTable {
	filter := make(map[string]bool, len(only))
	for _, id := range only {
		filter[id] = true
	}

	res := make(map[string][]iostage.StagedTable)
	for _, s := range staged {
		if s.ExpeditionID == iotaxa.StageExpeditionID {
			continue
		}
		if len(filter) > 0 && !filter[s.ExpeditionID] {
			continue
		}
		res[s.ExpeditionID] = append(res[s.ExpeditionID], s)
	}
	return res
}
