// Package derive assigns the composite identifiers that tie the survey
// tables together: site, station, transect and observation IDs.
//
// Input tables arrive already grouped by (expedition, method) and in
// the row order that becomes numbering order, typically chronological.
// Every function is a pure transformation: it returns a copy of the
// input table with identifier columns appended and never mutates its
// argument. Rows that cannot yield an identifier fail hard; a
// malformed key corrupts all downstream joins, so nothing here guesses
// defaults.
package derive

import (
	"fmt"

	"github.com/pristineseas/psdb/pkg/tabular"
)

// Identifier column names appended by this package.
const (
	ColSiteID        = "ps_site_id"
	ColStationID     = "ps_station_id"
	ColTransectID    = "transect_id"
	ColObservationID = "observation_id"
)

// SiteIDs assigns ps_site_id to every row of an (expedition, method)
// group: "{expedition_id}_{method}_{NNN}" with NNN 1-based and
// zero-padded in row order. Rows carrying an explicit upstream
// ps_site_id keep it; an explicit id that collides with a generated or
// another explicit one fails with DuplicateKeyError.
func SiteIDs(
	tab *tabular.Table,
	expeditionID string,
	method Method,
) (*tabular.Table, error) {
	if expeditionID == "" {
		return nil, MissingKeyFieldError(tab.Name(), "expedition_id is empty")
	}
	if !method.Known() {
		return nil, UnknownMethodError(string(method))
	}

	res := tab.Clone()
	hasExplicit := res.HasColumn(ColSiteID)
	if !hasExplicit {
		if err := res.AddColumn(ColSiteID, tabular.NewNull(tabular.String)); err != nil {
			return nil, err
		}
	}

	width := method.seqWidth()
	generated := make(map[string]int, res.Len())
	for i := 0; i < res.Len(); i++ {
		id := fmt.Sprintf("%s_%s_%0*d", expeditionID, method, width, i+1)
		generated[id] = i
	}

	assigned := make(map[string]bool, res.Len())
	for i := 0; i < res.Len(); i++ {
		v, _ := res.Cell(i, ColSiteID)
		if hasExplicit && !v.IsNull() && v.String() != "" {
			id := v.String()
			if j, ok := generated[id]; ok && j != i {
				return nil, DuplicateKeyError(id)
			}
			if assigned[id] {
				return nil, DuplicateKeyError(id)
			}
			assigned[id] = true
			continue
		}
		id := fmt.Sprintf("%s_%s_%0*d", expeditionID, method, width, i+1)
		if assigned[id] {
			return nil, DuplicateKeyError(id)
		}
		assigned[id] = true
		res.SetCell(i, ColSiteID, tabular.NewString(id))
	}
	return res, nil
}

// StationIDs appends ps_station_id = "{ps_site_id}_{suffix}" where the
// suffix follows the method's rule: rounded depth plus "m" for the
// visual methods, rig label for pelagic BRUVS, transect depth for
// submersible dives, a constant for single-station methods. A row
// whose suffix field is missing or null fails with
// MissingKeyFieldError referencing the row's site id.
func StationIDs(tab *tabular.Table, method Method) (*tabular.Table, error) {
	if !method.Known() {
		return nil, UnknownMethodError(string(method))
	}
	if !tab.HasColumn(ColSiteID) {
		return nil, MissingKeyFieldError(tab.Name(), "table has no ps_site_id column")
	}

	res := tab.Clone()
	if err := res.AddColumn(ColStationID, tabular.NewNull(tabular.String)); err != nil {
		return nil, err
	}

	for i := 0; i < res.Len(); i++ {
		siteID, _ := res.Cell(i, ColSiteID)
		if siteID.IsNull() || siteID.String() == "" {
			return nil, MissingKeyFieldError(
				fmt.Sprintf("%s row %d", res.Name(), i+1),
				"ps_site_id is missing",
			)
		}
		suffix, err := method.stationSuffix(rowView{tab: res, i: i})
		if err != nil {
			return nil, MissingKeyFieldError(siteID.String(), err.Error())
		}
		id := siteID.String() + "_" + suffix
		res.SetCell(i, ColStationID, tabular.NewString(id))
	}
	return res, nil
}

// TransectIDs appends transect_id = "{ps_station_id}_{diver}_{label}".
// The diver and transect label come verbatim from the row.
func TransectIDs(tab *tabular.Table) (*tabular.Table, error) {
	for _, col := range []string{ColStationID, "diver", "transect"} {
		if !tab.HasColumn(col) {
			return nil, MissingKeyFieldError(
				tab.Name(), fmt.Sprintf("table has no %s column", col),
			)
		}
	}

	res := tab.Clone()
	if err := res.AddColumn(ColTransectID, tabular.NewNull(tabular.String)); err != nil {
		return nil, err
	}

	for i := 0; i < res.Len(); i++ {
		stationID, _ := res.Cell(i, ColStationID)
		diver, _ := res.Cell(i, "diver")
		label, _ := res.Cell(i, "transect")
		if stationID.IsNull() || stationID.String() == "" {
			return nil, MissingKeyFieldError(
				fmt.Sprintf("%s row %d", res.Name(), i+1),
				"ps_station_id is missing",
			)
		}
		if diver.IsNull() || diver.String() == "" ||
			label.IsNull() || label.String() == "" {
			return nil, MissingKeyFieldError(
				stationID.String(), "diver or transect label is missing",
			)
		}
		id := fmt.Sprintf(
			"%s_%s_%s", stationID.String(), diver.String(), label.String(),
		)
		res.SetCell(i, ColTransectID, tabular.NewString(id))
	}
	return res, nil
}

// ObservationIDs appends observation_id =
// "{expedition_id}_{method}_obs_{NNNN}", sequenced within the
// expedition in row order.
func ObservationIDs(
	tab *tabular.Table,
	expeditionID string,
	method Method,
) (*tabular.Table, error) {
	if expeditionID == "" {
		return nil, MissingKeyFieldError(tab.Name(), "expedition_id is empty")
	}
	if !method.Known() {
		return nil, UnknownMethodError(string(method))
	}

	res := tab.Clone()
	if err := res.AddColumn(ColObservationID, tabular.NewNull(tabular.String)); err != nil {
		return nil, err
	}
	for i := 0; i < res.Len(); i++ {
		id := fmt.Sprintf("%s_%s_obs_%04d", expeditionID, method, i+1)
		res.SetCell(i, ColObservationID, tabular.NewString(id))
	}
	return res, nil
}
