package ioupload

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pristineseas/psdb/internal/iodb"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/db"
	"github.com/pristineseas/psdb/pkg/schema"
	"github.com/pristineseas/psdb/pkg/tabular"
)

// warehouseColumns maps table names to their model's db columns.
func warehouseColumns(table string) []string {
	switch table {
	case "sites":
		return schema.ColumnNames(schema.Site{})
	case "stations":
		return schema.ColumnNames(schema.Station{})
	case "observations":
		return schema.ColumnNames(schema.Observation{})
	case "taxa":
		return schema.ColumnNames(schema.Taxon{})
	case "expeditions":
		return schema.ColumnNames(schema.Expedition{})
	}
	return nil
}

// appendTable bulk-appends one staged table. Staged columns the
// warehouse does not know (derivation inputs like diver or rig) are
// dropped; the expedition_id column is filled from the staging key
// where the staged table lacks it.
func appendTable(
	ctx context.Context,
	op db.Operator,
	cfg *config.Config,
	table, expeditionID string,
	tab *tabular.Table,
) (int64, error) {
	whCols := warehouseColumns(table)
	if whCols == nil {
		return 0, iodb.AppendError(table,
			fmt.Errorf("unknown warehouse table"))
	}
	var cols []string
	fillExpedition := false
	for _, c := range whCols {
		switch {
		case tab.HasColumn(c):
			cols = append(cols, c)
		case c == "expedition_id" && expeditionID != "":
			cols = append(cols, c)
			fillExpedition = true
		}
	}

	batchSize := cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = 10_000
	}

	bar := pb.Full.Start(tab.Len())
	bar.Set("prefix", fmt.Sprintf("Appending %s: ", table))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var total int64
	batch := make([][]any, 0, batchSize)
	for i := 0; i < tab.Len(); i++ {
		row := make([]any, len(cols))
		for j, c := range cols {
			if fillExpedition && c == "expedition_id" &&
				!tab.HasColumn(c) {
				row[j] = expeditionID
				continue
			}
			v, _ := tab.Cell(i, c)
			pgv, err := pgValue(v)
			if err != nil {
				return 0, iodb.AppendError(table, fmt.Errorf(
					"row %d column %s: %w", i+1, c, err))
			}
			row[j] = pgv
		}
		batch = append(batch, row)

		if len(batch) == batchSize {
			n, err := iodb.AppendRows(ctx, op.Pool(), table, cols, batch)
			if err != nil {
				return 0, err
			}
			total += n
			bar.Add(len(batch))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		n, err := iodb.AppendRows(ctx, op.Pool(), table, cols, batch)
		if err != nil {
			return 0, err
		}
		total += n
		bar.Add(len(batch))
	}

	return total, nil
}

// pgValue converts a cell to its PostgreSQL wire value.
func pgValue(v tabular.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch v.Kind() {
	case tabular.Integer:
		return v.Int64(), nil
	case tabular.Float:
		return v.Float64(), nil
	case tabular.Numeric:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return nil, fmt.Errorf("bad numeric %q", v.String())
		}
		return f, nil
	case tabular.Boolean:
		return v.Bool(), nil
	case tabular.Date:
		t, err := time.Parse("2006-01-02", v.String())
		if err != nil {
			return nil, fmt.Errorf("bad date %q", v.String())
		}
		return t, nil
	default:
		return v.String(), nil
	}
}
