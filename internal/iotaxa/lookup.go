package iotaxa

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pristineseas/psdb/pkg/tabular"
)

// resolveLookupFile finds the curated taxa CSV in the data directory.
// Files are named "taxa*.csv"; a date stamp in the name sorts later,
// so the lexicographically last match is the latest.
func resolveLookupFile(dataDir string) (string, error) {
	if dataDir == "" {
		return "", fmt.Errorf("data directory not set")
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf(
			"failed to read data directory %s: %w", dataDir, err,
		)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "taxa") &&
			strings.HasSuffix(name, ".csv") {
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 {
		return "", fmt.Errorf(
			"no taxa lookup (taxa*.csv) in %s", dataDir,
		)
	}

	sort.Strings(matches)
	return dataDir + string(os.PathSeparator) +
		matches[len(matches)-1], nil
}

func missingColumnsError(path string) error {
	return fmt.Errorf(
		"%s must have taxon_code and scientific_name columns", path,
	)
}

// dedupByCode collapses duplicate taxon codes. One accepted row among
// the duplicates wins; several accepted rows for the same code fail.
func dedupByCode(raw *tabular.Table) ([]lookupRow, error) {
	byCode := make(map[string][]lookupRow)
	var order []string

	for i := 0; i < raw.Len(); i++ {
		row := lookupRow{
			code:           cellString(raw, i, "taxon_code"),
			scientificName: cellString(raw, i, "scientific_name"),
			nomenclature:   cellString(raw, i, "nomenclature"),
			rank:           cellString(raw, i, "rank"),
			trophicGroup:   cellString(raw, i, "trophic_group"),
			lwA:            cellString(raw, i, "lw_a"),
			lwB:            cellString(raw, i, "lw_b"),
			lengthToTL:     cellString(raw, i, "length_to_tl"),
			maxLengthCM:    cellString(raw, i, "max_length_cm"),
			status:         cellString(raw, i, "status"),
		}
		if row.status == "" {
			row.status = acceptedStatus
		}
		if row.code == "" || row.scientificName == "" {
			return nil, LookupError(fmt.Errorf(
				"row %d has empty taxon_code or scientific_name", i+1,
			))
		}
		if _, ok := byCode[row.code]; !ok {
			order = append(order, row.code)
		}
		byCode[row.code] = append(byCode[row.code], row)
	}

	var res []lookupRow
	for _, code := range order {
		rows := byCode[code]
		if len(rows) == 1 {
			res = append(res, rows[0])
			continue
		}

		var accepted []lookupRow
		for _, r := range rows {
			if r.status == acceptedStatus {
				accepted = append(accepted, r)
			}
		}
		if len(accepted) != 1 {
			return nil, DuplicateCodeError(code, len(rows))
		}
		res = append(res, accepted[0])
	}

	return res, nil
}

func cellString(tab *tabular.Table, i int, col string) string {
	v, ok := tab.Cell(i, col)
	if !ok || v.IsNull() {
		return ""
	}
	return strings.TrimSpace(v.String())
}

// buildTable renders parsed rows as the staged taxa table, sorted by
// taxon code.
func buildTable(rows []parsedRow) *tabular.Table {
	tab := tabular.New("taxa",
		"taxon_code", "name_id", "scientific_name", "canonical_name",
		"rank", "trophic_group", "lw_a", "lw_b", "length_to_tl",
		"max_length_cm", "status", "parse_quality",
	)

	for _, r := range rows {
		tab.AppendRow(
			tabular.NewString(r.code),
			tabular.NewString(r.nameID),
			tabular.NewString(r.scientificName),
			optString(r.canonicalName),
			optString(r.rank),
			optString(r.trophicGroup),
			optNumeric(r.lwA),
			optNumeric(r.lwB),
			optNumeric(r.lengthToTL),
			optNumeric(r.maxLengthCM),
			tabular.NewString(r.status),
			tabular.NewInt(int64(r.parseQuality)),
		)
	}

	tab.SortBy("taxon_code")
	return tab
}

func optString(s string) tabular.Value {
	if s == "" {
		return tabular.NewNull(tabular.String)
	}
	return tabular.NewString(s)
}

func optNumeric(s string) tabular.Value {
	if s == "" {
		return tabular.NewNull(tabular.Numeric)
	}
	return tabular.NewNumeric(s)
}
