package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// ColumnNames returns the database column names of a model in field
// order, read from the db struct tags.
func ColumnNames(model interface{}) []string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if dbTag := t.Field(i).Tag.Get("db"); dbTag != "" {
			cols = append(cols, dbTag)
		}
	}
	return cols
}

// Expedition DDL methods
func (e Expedition) TableDDL() string {
	return generateDDL(e, "expeditions")
}

func (e Expedition) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_expeditions_country ON expeditions(country);",
	}
}

func (e Expedition) TableName() string {
	return "expeditions"
}

// Site DDL methods
func (s Site) TableDDL() string {
	return generateDDL(s, "sites")
}

func (s Site) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_sites_expedition_method ON sites(expedition_id, method);",
		"CREATE INDEX IF NOT EXISTS idx_sites_site_name ON sites(site_name);",
	}
}

func (s Site) TableName() string {
	return "sites"
}

// Station DDL methods
func (s Station) TableDDL() string {
	return generateDDL(s, "stations")
}

func (s Station) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_stations_site ON stations(ps_site_id);",
		"CREATE INDEX IF NOT EXISTS idx_stations_expedition ON stations(expedition_id);",
	}
}

func (s Station) TableName() string {
	return "stations"
}

// Observation DDL methods
func (o Observation) TableDDL() string {
	return generateDDL(o, "observations")
}

func (o Observation) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_observations_station ON observations(ps_station_id);",
		"CREATE INDEX IF NOT EXISTS idx_observations_taxon ON observations(taxon_code);",
		"CREATE INDEX IF NOT EXISTS idx_observations_expedition ON observations(expedition_id);",
	}
}

func (o Observation) TableName() string {
	return "observations"
}

// Taxon DDL methods
func (t Taxon) TableDDL() string {
	return generateDDL(t, "taxa")
}

func (t Taxon) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_taxa_canonical ON taxa(canonical_name);",
		"CREATE INDEX IF NOT EXISTS idx_taxa_name_id ON taxa(name_id);",
	}
}

func (t Taxon) TableName() string {
	return "taxa"
}
