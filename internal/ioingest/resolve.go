package ioingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// datePattern extracts a YYYY-MM-DD stamp from an export filename.
var datePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// resolveExportFile finds the raw export in dataDir matching the
// "{expeditionID}_{method}" prefix for the given kind of table.
// SQLite workbooks carry both kinds in one file; CSV exports encode
// the kind in the filename ("{prefix}_{kind}...csv"). If multiple
// files match, the one with the latest date stamp wins and a warning
// describes the choice.
func resolveExportFile(
	dataDir, expeditionID, method, kind string,
) (string, string, error) {
	prefix := fmt.Sprintf("%s_%s", expeditionID, method)

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", "", fmt.Errorf(
			"failed to read data directory %s: %w", dataDir, err,
		)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if isWorkbook(name) {
			matches = append(matches, name)
			continue
		}
		if strings.HasSuffix(name, ".csv") &&
			strings.Contains(name, "_"+kind) {
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 {
		return "", "", fmt.Errorf(
			"no export found for %s %s (pattern %s*) in %s",
			expeditionID, kind, prefix, dataDir,
		)
	}

	if len(matches) == 1 {
		return filepath.Join(dataDir, matches[0]), "", nil
	}

	selected := selectLatestFile(matches)
	warning := fmt.Sprintf(
		"found %d exports matching %s in %s: %v - selected latest: %s",
		len(matches), prefix, dataDir, matches, selected,
	)

	return filepath.Join(dataDir, selected), warning, nil
}

// selectLatestFile picks the export with the latest date stamp.
// When stamps are equal or absent, workbooks win over CSV: they are
// a single consistent snapshot of all tables.
func selectLatestFile(filenames []string) string {
	if len(filenames) == 0 {
		return ""
	}

	type fileMeta struct {
		filename string
		date     string
		priority int
	}

	metas := make([]fileMeta, 0, len(filenames))
	for _, name := range filenames {
		date := ""
		if m := datePattern.FindStringSubmatch(name); len(m) > 1 {
			date = m[1]
		}
		metas = append(metas, fileMeta{
			filename: name,
			date:     date,
			priority: fileTypePriority(name),
		})
	}

	best := metas[0]
	for _, f := range metas[1:] {
		if f.date != "" &&
			(best.date == "" || f.date > best.date ||
				(f.date == best.date && f.priority > best.priority)) {
			best = f
		} else if f.date == "" && best.date == "" &&
			f.priority > best.priority {
			best = f
		}
	}

	return best.filename
}

// fileTypePriority ranks export formats:
// sqlite (2) > csv (1).
func fileTypePriority(filename string) int {
	switch {
	case isWorkbook(filename):
		return 2
	case strings.HasSuffix(filename, ".csv"):
		return 1
	}
	return 0
}

// isWorkbook reports whether the filename is a SQLite workbook.
func isWorkbook(filename string) bool {
	return strings.HasSuffix(filename, ".sqlite") ||
		strings.HasSuffix(filename, ".db")
}
