package ioingest

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/pristineseas/psdb/pkg/tabular"
	_ "modernc.org/sqlite" // SQLite driver
)

// openWorkbook opens a SQLite workbook export.
func openWorkbook(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("workbook does not exist: %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w",
			path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to workbook %s: %w",
			path, err)
	}

	return db, nil
}

// readWorkbookTable loads one table of a SQLite workbook. All cells
// come back as strings; typing happens later during normalization.
func readWorkbookTable(
	db *sql.DB, path, tableName string,
) (*tabular.Table, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %q", tableName))
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read table %s from %s: %w", tableName, path, err,
		)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read columns of %s in %s: %w",
			tableName, path, err,
		)
	}

	tab := tabular.New(tableName, cols...)

	values := make([]sql.NullString, len(cols))
	scanArgs := make([]any, len(cols))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf(
				"failed to scan row of %s in %s: %w",
				tableName, path, err,
			)
		}

		vals := make([]tabular.Value, len(cols))
		for i, v := range values {
			if v.Valid && v.String != "" {
				vals[i] = tabular.NewString(v.String)
			} else {
				vals[i] = tabular.NewNull(tabular.String)
			}
		}
		if err := tab.AppendRow(vals...); err != nil {
			return nil, fmt.Errorf(
				"failed to append row of %s from %s: %w",
				tableName, path, err,
			)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed while reading %s from %s: %w", tableName, path, err,
		)
	}

	return tab, nil
}
