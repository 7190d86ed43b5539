package iodb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppendRows bulk-appends rows to a table using the PostgreSQL COPY
// protocol. Columns must match the order of values in each row.
// Returns the number of rows written.
func AppendRows(
	ctx context.Context,
	pool *pgxpool.Pool,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := pool.CopyFrom(
		ctx,
		pgx.Identifier{table},
		columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, AppendError(table, err)
	}

	return n, nil
}
