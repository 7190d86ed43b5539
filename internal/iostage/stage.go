// Package iostage persists normalized expedition tables between the
// pipeline and the uploader. The store is a single SQLite file in the
// cache directory; cells are kept in their canonical textual form so
// a staged table reloads byte-identical to what the pipeline wrote.
package iostage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/pristineseas/psdb/pkg/normalize"
	"github.com/pristineseas/psdb/pkg/tabular"
	_ "modernc.org/sqlite" // SQLite driver
)

// StagedTable describes one staged table without its rows.
type StagedTable struct {
	ExpeditionID string
	Method       string
	Name         string
	RowCount     int
	Checksum     string
	StagedAt     string
}

// Stage is the local staging store between normalization and upload.
type Stage interface {
	// SaveTable stores a normalized table, replacing any previous
	// version of the same expedition/method/name.
	SaveTable(expeditionID, method string, tab *tabular.Table) error

	// LoadTable reconstructs a staged table.
	LoadTable(expeditionID, method, name string) (*tabular.Table, error)

	// SaveReport stores the normalization report next to its table.
	SaveReport(
		expeditionID, method string, rep *normalize.Report,
	) error

	// LoadReports returns all reports of an expedition.
	LoadReports(expeditionID string) ([]normalize.Report, error)

	// Tables lists staged tables, all of them or one expedition's.
	Tables(expeditionID string) ([]StagedTable, error)

	// DeleteExpedition removes all staged data of an expedition.
	DeleteExpedition(expeditionID string) error

	// Close closes the store.
	Close() error
}

type stage struct {
	db   *sql.DB
	path string
}

// cellRec is the stored form of one cell: type name and canonical
// textual value. An empty value is a typed null.
type cellRec struct {
	K string `json:"k"`
	V string `json:"v,omitempty"`
}

// New opens (and if needed initializes) the staging store at path.
func New(path string) (Stage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	s := &stage{db: db, path: path}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *stage) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS staged_tables (
			expedition_id TEXT NOT NULL,
			method TEXT NOT NULL,
			name TEXT NOT NULL,
			columns TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			checksum TEXT NOT NULL,
			staged_at TEXT NOT NULL,
			PRIMARY KEY (expedition_id, method, name)
		)`,
		`CREATE TABLE IF NOT EXISTS staged_rows (
			expedition_id TEXT NOT NULL,
			method TEXT NOT NULL,
			name TEXT NOT NULL,
			idx INTEGER NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (expedition_id, method, name, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS staged_reports (
			expedition_id TEXT NOT NULL,
			method TEXT NOT NULL,
			name TEXT NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (expedition_id, method, name)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return OpenError(s.path, err)
		}
	}
	return nil
}

func (s *stage) SaveTable(
	expeditionID, method string, tab *tabular.Table,
) error {
	enc := gnfmt.GNjson{}

	colBytes, err := enc.Encode(tab.Columns())
	if err != nil {
		return WriteError(tab.Name(), err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return WriteError(tab.Name(), err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`DELETE FROM staged_rows
		 WHERE expedition_id = ? AND method = ? AND name = ?`,
		expeditionID, method, tab.Name(),
	)
	if err != nil {
		return WriteError(tab.Name(), err)
	}

	_, err = tx.Exec(
		`INSERT OR REPLACE INTO staged_tables
		 (expedition_id, method, name, columns, row_count,
		  checksum, staged_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expeditionID, method, tab.Name(), string(colBytes),
		tab.Len(), tab.Checksum(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return WriteError(tab.Name(), err)
	}

	ins, err := tx.Prepare(
		`INSERT INTO staged_rows
		 (expedition_id, method, name, idx, data)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return WriteError(tab.Name(), err)
	}
	defer ins.Close()

	for i := 0; i < tab.Len(); i++ {
		row := tab.Row(i)
		recs := make([]cellRec, len(row))
		for j, v := range row {
			recs[j] = cellRec{K: v.Kind().String(), V: v.String()}
		}
		data, err := enc.Encode(recs)
		if err != nil {
			return WriteError(tab.Name(), err)
		}
		if _, err := ins.Exec(
			expeditionID, method, tab.Name(), i, string(data),
		); err != nil {
			return WriteError(tab.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return WriteError(tab.Name(), err)
	}

	return nil
}

func (s *stage) LoadTable(
	expeditionID, method, name string,
) (*tabular.Table, error) {
	enc := gnfmt.GNjson{}

	var colJSON string
	err := s.db.QueryRow(
		`SELECT columns FROM staged_tables
		 WHERE expedition_id = ? AND method = ? AND name = ?`,
		expeditionID, method, name,
	).Scan(&colJSON)
	if err != nil {
		return nil, ReadError(name, err)
	}

	var cols []string
	if err := enc.Decode([]byte(colJSON), &cols); err != nil {
		return nil, ReadError(name, err)
	}

	tab := tabular.New(name, cols...)

	rows, err := s.db.Query(
		`SELECT data FROM staged_rows
		 WHERE expedition_id = ? AND method = ? AND name = ?
		 ORDER BY idx`,
		expeditionID, method, name,
	)
	if err != nil {
		return nil, ReadError(name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, ReadError(name, err)
		}

		var recs []cellRec
		if err := enc.Decode([]byte(data), &recs); err != nil {
			return nil, ReadError(name, err)
		}

		vals := make([]tabular.Value, len(recs))
		for j, rec := range recs {
			kind, ok := tabular.ParseType(rec.K)
			if !ok {
				return nil, ReadError(name,
					fmt.Errorf("unknown cell type %q", rec.K))
			}
			v, err := tabular.FromCanonical(kind, rec.V)
			if err != nil {
				return nil, ReadError(name, err)
			}
			vals[j] = v
		}
		if err := tab.AppendRow(vals...); err != nil {
			return nil, ReadError(name, err)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, ReadError(name, err)
	}

	return tab, nil
}

func (s *stage) SaveReport(
	expeditionID, method string, rep *normalize.Report,
) error {
	enc := gnfmt.GNjson{}
	data, err := enc.Encode(rep)
	if err != nil {
		return WriteError(rep.Table, err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO staged_reports
		 (expedition_id, method, name, data)
		 VALUES (?, ?, ?, ?)`,
		expeditionID, method, rep.Table, string(data),
	)
	if err != nil {
		return WriteError(rep.Table, err)
	}

	return nil
}

func (s *stage) LoadReports(
	expeditionID string,
) ([]normalize.Report, error) {
	enc := gnfmt.GNjson{}

	rows, err := s.db.Query(
		`SELECT data FROM staged_reports
		 WHERE expedition_id = ?
		 ORDER BY method, name`,
		expeditionID,
	)
	if err != nil {
		return nil, ReadError("reports", err)
	}
	defer rows.Close()

	var res []normalize.Report
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, ReadError("reports", err)
		}
		var rep normalize.Report
		if err := enc.Decode([]byte(data), &rep); err != nil {
			return nil, ReadError("reports", err)
		}
		res = append(res, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, ReadError("reports", err)
	}

	return res, nil
}

func (s *stage) Tables(expeditionID string) ([]StagedTable, error) {
	query := `SELECT expedition_id, method, name, row_count,
		checksum, staged_at
		FROM staged_tables`
	var args []any
	if expeditionID != "" {
		query += " WHERE expedition_id = ?"
		args = append(args, expeditionID)
	}
	query += " ORDER BY expedition_id, method, name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, ReadError("staged_tables", err)
	}
	defer rows.Close()

	var res []StagedTable
	for rows.Next() {
		var st StagedTable
		err := rows.Scan(
			&st.ExpeditionID, &st.Method, &st.Name,
			&st.RowCount, &st.Checksum, &st.StagedAt,
		)
		if err != nil {
			return nil, ReadError("staged_tables", err)
		}
		res = append(res, st)
	}

	if err := rows.Err(); err != nil {
		return nil, ReadError("staged_tables", err)
	}

	return res, nil
}

func (s *stage) DeleteExpedition(expeditionID string) error {
	for _, table := range []string{
		"staged_rows", "staged_tables", "staged_reports",
	} {
		_, err := s.db.Exec(
			fmt.Sprintf(
				"DELETE FROM %s WHERE expedition_id = ?", table,
			),
			expeditionID,
		)
		if err != nil {
			return WriteError(table, err)
		}
	}
	return nil
}

func (s *stage) Close() error {
	return s.db.Close()
}
