package iopipeline

import (
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/pristineseas/psdb/internal/ioingest"
	"github.com/pristineseas/psdb/internal/iostage"
	"github.com/pristineseas/psdb/pkg/config"
	"github.com/pristineseas/psdb/pkg/derive"
	"github.com/pristineseas/psdb/pkg/expeditions"
	"github.com/pristineseas/psdb/pkg/link"
	"github.com/pristineseas/psdb/pkg/normalize"
	"github.com/pristineseas/psdb/pkg/overrides"
	"github.com/pristineseas/psdb/pkg/tabular"
)

// siteNameCol joins observations to their site and keys report rows.
const siteNameCol = "site_name"

// processMethod runs one expedition method through the full chain:
// ingest, normalize, override, derive, link, stage.
func (p *pipeline) processMethod(
	cfg *config.Config,
	ing ioingest.Ingester,
	st iostage.Stage,
	schemas map[string]*tabular.Schema,
	exp expeditions.ExpeditionConfig,
	ovr *overrides.Set,
	methodCode string,
) error {
	m := derive.Method(methodCode)
	sitesSchema := schemas[schemaSites]
	stationsSchema := schemas[schemaStations]
	obsSchema := schemas[schemaObservations]

	gn.Info("(1/5) Ingesting <em>%s %s</em> exports", exp.ID, methodCode)
	sitesRaw, err := ing.Read(&exp, methodCode, ioingest.KindSites)
	if err != nil {
		return err
	}
	obsRaw, err := ing.Read(
		&exp, methodCode, ioingest.KindObservations,
	)
	if err != nil {
		return err
	}

	mc, _ := exp.MethodConfig(methodCode)

	gn.Info("(2/5) Normalizing sites...")
	fillConstant(sitesRaw, "expedition_id", exp.ID)
	fillConstant(sitesRaw, "method", methodCode)

	sitesMapping, err := loadMapping(
		cfg, exp, mc.SitesMapping, sitesSchema,
	)
	if err != nil {
		return err
	}
	sites, sitesRep, err := normalize.Normalize(
		sitesRaw, sitesMapping, sitesSchema,
	)
	if err != nil {
		return err
	}

	if ovr != nil {
		sites, err = ovr.Apply(sites, sitesSchema, exp.ID, sitesRep)
		if err != nil {
			return OverridesError(exp.ID, err)
		}
	}

	sites, err = derive.SiteIDs(sites, exp.ID, m)
	if err != nil {
		return err
	}
	sites.SortBy(derive.ColSiteID)
	gn.Message("<em>%s sites</em>",
		humanize.Comma(int64(sites.Len())))

	gn.Info("(3/5) Normalizing observations...")
	obsMapping, err := loadMapping(
		cfg, exp, mc.ObservationsMapping, obsSchema,
	)
	if err != nil {
		return err
	}
	obs, obsRep, err := normalize.Normalize(obsRaw, obsMapping, obsSchema)
	if err != nil {
		return err
	}

	gn.Info("(4/5) Deriving identifiers...")
	siteKeys := projectColumns(
		sites, sites.Name(), siteNameCol, derive.ColSiteID,
	)
	linked, unmatched, err := link.Link(
		obs, siteKeys, []string{siteNameCol},
		link.LeftPreserveUnmatched,
	)
	if err != nil {
		return err
	}
	for _, u := range unmatched {
		obsRep.Add(u.Key, siteNameCol, "no matching site")
	}

	linked, err = derive.StationIDs(linked, m)
	if err != nil {
		return err
	}
	if linked.HasColumn("diver") && linked.HasColumn("transect") {
		linked, err = derive.TransectIDs(linked)
		if err != nil {
			return err
		}
	}
	linked, err = derive.ObservationIDs(linked, exp.ID, m)
	if err != nil {
		return err
	}

	stations := buildStations(linked, stationsSchema)
	gn.Message("<em>%s stations, %s observations</em>",
		humanize.Comma(int64(stations.Len())),
		humanize.Comma(int64(linked.Len())))

	gn.Info("(5/5) Staging tables...")
	for _, tab := range []*tabular.Table{sites, stations, linked} {
		if err := st.SaveTable(exp.ID, methodCode, tab); err != nil {
			return err
		}
	}
	for _, rep := range []*normalize.Report{sitesRep, obsRep} {
		if err := st.SaveReport(exp.ID, methodCode, rep); err != nil {
			return err
		}
		slog.Info("Normalization report",
			"expedition_id", exp.ID,
			"method", methodCode,
			"summary", rep.Summary(),
		)
		if !rep.Empty() {
			gn.Warn("%s", rep.Summary())
		}
	}

	return nil
}

// fillConstant guarantees a column holding the given constant: a
// missing column is added, null cells are filled, explicit values are
// left alone.
func fillConstant(tab *tabular.Table, col, val string) {
	v := tabular.NewString(val)
	if !tab.HasColumn(col) {
		tab.AddColumn(col, v)
		return
	}
	for i := 0; i < tab.Len(); i++ {
		cell, _ := tab.Cell(i, col)
		if cell.IsNull() {
			tab.SetCell(i, col, v)
		}
	}
}

// projectColumns copies the named columns into a new table in the
// given order. Missing columns come back as string nulls.
func projectColumns(
	tab *tabular.Table, name string, cols ...string,
) *tabular.Table {
	res := tabular.New(name, cols...)
	for i := 0; i < tab.Len(); i++ {
		row := make([]tabular.Value, len(cols))
		for j, c := range cols {
			if v, ok := tab.Cell(i, c); ok {
				row[j] = v
			} else {
				row[j] = tabular.NewNull(tabular.String)
			}
		}
		// AppendRow cannot fail here: arity matches by construction.
		res.AppendRow(row...)
	}
	return res
}

// buildStations extracts the distinct stations from linked
// observations. The first observation of a station supplies the
// station-level fields; output is sorted by ps_station_id.
func buildStations(
	linked *tabular.Table, schema *tabular.Schema,
) *tabular.Table {
	var cols []string
	for _, c := range schema.Columns() {
		if linked.HasColumn(c) {
			cols = append(cols, c)
		}
	}

	res := tabular.New(schemaStations, cols...)
	seen := make(map[string]bool)
	for i := 0; i < linked.Len(); i++ {
		id, ok := linked.Cell(i, derive.ColStationID)
		if !ok || id.IsNull() || seen[id.String()] {
			continue
		}
		seen[id.String()] = true

		row := make([]tabular.Value, len(cols))
		for j, c := range cols {
			v, _ := linked.Cell(i, c)
			row[j] = v
		}
		res.AppendRow(row...)
	}

	res.SortBy(derive.ColStationID)
	return res
}
