package ioingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pristineseas/psdb/pkg/tabular"
)

// ReadCSVFile loads any CSV file into a table. All cells come back as
// strings. Used by the taxa builder for lookup files that live outside
// the expedition export naming scheme.
func ReadCSVFile(path, tableName string) (*tabular.Table, error) {
	return readCSV(path, tableName)
}

// readCSV loads a raw CSV export into a table. All cells come back as
// strings; typing happens later during normalization.
func readCSV(path, tableName string) (*tabular.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Field exports sometimes drop trailing optional columns.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s is empty", path)
		}
		return nil, fmt.Errorf("failed to read csv header in %s: %w",
			path, err)
	}

	tab := tabular.New(tableName, header...)

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf(
				"failed to read csv record at line %d in %s: %w",
				line+1, path, err,
			)
		}
		line++

		vals := make([]tabular.Value, len(header))
		for i := range header {
			if i < len(record) && record[i] != "" {
				vals[i] = tabular.NewString(record[i])
			} else {
				vals[i] = tabular.NewNull(tabular.String)
			}
		}
		if err := tab.AppendRow(vals...); err != nil {
			return nil, fmt.Errorf(
				"failed to append row %d from %s: %w", line, path, err,
			)
		}
	}

	return tab, nil
}
