// Package schema provides database schema models for psdb.
// Models describe the harmonized warehouse tables every expedition's
// normalized output is appended to.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// Expedition stores metadata associated with one field campaign.
// Rows are immutable once created; one row per campaign.
type Expedition struct {
	// ID is the expedition identifier: ISO3 country code plus year,
	// e.g. COL_2024. It prefixes every derived identifier downstream.
	ID string `db:"id" ddl:"VARCHAR(50) PRIMARY KEY" gorm:"column:id;primaryKey;type:varchar(50)"`

	// Name is the descriptive campaign title.
	Name string `db:"name" ddl:"VARCHAR(255)" gorm:"column:name;type:varchar(255)"`

	// Country is the ISO3 code of the host country.
	Country string `db:"country" ddl:"VARCHAR(3)" gorm:"column:country;type:varchar(3)"`

	// Vessel is the research vessel's name.
	Vessel string `db:"vessel" ddl:"VARCHAR(100)" gorm:"column:vessel;type:varchar(100)"`

	// Leader is the expedition lead.
	Leader string `db:"leader" ddl:"VARCHAR(100)" gorm:"column:leader;type:varchar(100)"`

	// StartDate and EndDate bound the campaign.
	StartDate sql.NullTime `db:"start_date" ddl:"DATE" gorm:"column:start_date;type:date"`
	EndDate   sql.NullTime `db:"end_date" ddl:"DATE" gorm:"column:end_date;type:date"`

	// UpdatedAt records the timestamp of the expedition's last upload.
	UpdatedAt time.Time `db:"updated_at" ddl:"TIMESTAMP WITHOUT TIME ZONE" gorm:"column:updated_at;type:timestamp without time zone"`
}

// Site is a unique point in space and time where one or more survey
// methods were conducted. Never mutated after upload except by
// full-table replace.
type Site struct {
	// ID is the derived site identifier,
	// "{expedition_id}_{method}_{NNN}". Unique within an
	// expedition+method pair, assigned in strictly increasing row
	// order.
	ID string `db:"ps_site_id" ddl:"VARCHAR(50) PRIMARY KEY" gorm:"column:ps_site_id;primaryKey;type:varchar(50)"`

	// ExpeditionID links the site to its campaign.
	ExpeditionID string `db:"expedition_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:expedition_id;type:varchar(50);not null"`

	// Method is the survey technique code.
	Method string `db:"method" ddl:"VARCHAR(20) NOT NULL" gorm:"column:method;type:varchar(20);not null"`

	// SiteName is the field team's name for the location.
	SiteName string `db:"site_name" ddl:"VARCHAR(255)" gorm:"column:site_name;type:varchar(255)"`

	// Location and Sublocation are free-text place descriptions.
	Location    string `db:"location" ddl:"VARCHAR(255)" gorm:"column:location;type:varchar(255)"`
	Sublocation string `db:"sublocation" ddl:"VARCHAR(255)" gorm:"column:sublocation;type:varchar(255)"`

	// Date and Time record when sampling started.
	Date sql.NullTime   `db:"date" ddl:"DATE" gorm:"column:date;type:date"`
	Time sql.NullString `db:"time" ddl:"VARCHAR(5)" gorm:"column:time;type:varchar(5)"`

	// Latitude and Longitude are WGS84 decimal degrees, south and
	// west negative.
	Latitude  sql.NullFloat64 `db:"latitude" ddl:"DOUBLE PRECISION" gorm:"column:latitude;type:double precision"`
	Longitude sql.NullFloat64 `db:"longitude" ddl:"DOUBLE PRECISION" gorm:"column:longitude;type:double precision"`

	// Habitat and Exposure are controlled-vocabulary descriptors.
	Habitat  sql.NullString `db:"habitat" ddl:"VARCHAR(50)" gorm:"column:habitat;type:varchar(50)"`
	Exposure sql.NullString `db:"exposure" ddl:"VARCHAR(50)" gorm:"column:exposure;type:varchar(50)"`

	// TeamLead names the scientist responsible for the record.
	TeamLead string `db:"team_lead" ddl:"VARCHAR(100)" gorm:"column:team_lead;type:varchar(100)"`

	// Notes carries free-text remarks from the field log.
	Notes string `db:"notes" ddl:"TEXT" gorm:"column:notes;type:text"`
}

// Station is a sampling unit nested under a site: a depth stratum, a
// transect set or a camera rig. A station belongs to exactly one site.
type Station struct {
	// ID is the derived station identifier,
	// "{ps_site_id}_{suffix}" with a method-dependent suffix.
	ID string `db:"ps_station_id" ddl:"VARCHAR(60) PRIMARY KEY" gorm:"column:ps_station_id;primaryKey;type:varchar(60)"`

	// SiteID is the parent site. Referential integrity is enforced by
	// the linker before upload, not by the storage layer.
	SiteID string `db:"ps_site_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:ps_site_id;type:varchar(50);not null"`

	// ExpeditionID denormalizes the campaign for per-expedition
	// replace semantics.
	ExpeditionID string `db:"expedition_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:expedition_id;type:varchar(50);not null"`

	// DepthM is the station depth in meters.
	DepthM sql.NullFloat64 `db:"depth_m" ddl:"DOUBLE PRECISION" gorm:"column:depth_m;type:double precision"`

	// Stratum is the discretized depth bucket (shallow, deep, ...).
	Stratum sql.NullString `db:"stratum" ddl:"VARCHAR(20)" gorm:"column:stratum;type:varchar(20)"`

	// TransectCount, AreaM2 and DurationMin describe survey effort.
	TransectCount sql.NullInt32   `db:"transect_count" ddl:"INT" gorm:"column:transect_count;type:int"`
	AreaM2        sql.NullFloat64 `db:"area_m2" ddl:"DOUBLE PRECISION" gorm:"column:area_m2;type:double precision"`
	DurationMin   sql.NullFloat64 `db:"duration_min" ddl:"DOUBLE PRECISION" gorm:"column:duration_min;type:double precision"`

	// SpeciesRichness, Abundance and Biomass are aggregated from
	// observations; optional summary fields.
	SpeciesRichness sql.NullInt32   `db:"species_richness" ddl:"INT" gorm:"column:species_richness;type:int"`
	Abundance       sql.NullFloat64 `db:"abundance" ddl:"DOUBLE PRECISION" gorm:"column:abundance;type:double precision"`
	BiomassG        sql.NullFloat64 `db:"biomass_g" ddl:"DOUBLE PRECISION" gorm:"column:biomass_g;type:double precision"`
}

// Observation is a single measured record: one taxon at one size class
// on one transect, or one count at a station.
type Observation struct {
	// ID is the derived observation identifier,
	// "{expedition_id}_{method}_obs_{NNNN}".
	ID string `db:"observation_id" ddl:"VARCHAR(60) PRIMARY KEY" gorm:"column:observation_id;primaryKey;type:varchar(60)"`

	// StationID resolves to an existing station; enforced by the
	// linker before upload.
	StationID string `db:"ps_station_id" ddl:"VARCHAR(60) NOT NULL" gorm:"column:ps_station_id;type:varchar(60);not null"`

	// TransectID groups observations of one pass, where the method
	// has transects.
	TransectID sql.NullString `db:"transect_id" ddl:"VARCHAR(80)" gorm:"column:transect_id;type:varchar(80)"`

	// ExpeditionID denormalizes the campaign for per-expedition
	// replace semantics.
	ExpeditionID string `db:"expedition_id" ddl:"VARCHAR(50) NOT NULL" gorm:"column:expedition_id;type:varchar(50);not null"`

	// TaxonCode references the taxa lookup; never embedded.
	TaxonCode string `db:"taxon_code" ddl:"VARCHAR(50) NOT NULL" gorm:"column:taxon_code;type:varchar(50);not null"`

	// LengthCM is the estimated total length of the individual(s).
	LengthCM sql.NullFloat64 `db:"length_cm" ddl:"DOUBLE PRECISION" gorm:"column:length_cm;type:double precision"`

	// Count is the number of individuals observed.
	Count sql.NullInt32 `db:"count" ddl:"INT" gorm:"column:count;type:int"`

	// Abundance and BiomassG are derived from count, length and the
	// taxon's length-weight parameters. Non-negative, never input
	// directly.
	Abundance sql.NullFloat64 `db:"abundance" ddl:"DOUBLE PRECISION" gorm:"column:abundance;type:double precision"`
	BiomassG  sql.NullFloat64 `db:"biomass_g" ddl:"DOUBLE PRECISION" gorm:"column:biomass_g;type:double precision"`
}

// Taxon maps a survey taxon code to a canonical scientific name and
// the biological parameters observations are derived with. Maintained
// independently of expedition data.
type Taxon struct {
	// Code is the method- or site-specific taxon code used on
	// datasheets.
	Code string `db:"taxon_code" ddl:"VARCHAR(50) PRIMARY KEY" gorm:"column:taxon_code;primaryKey;type:varchar(50)"`

	// NameID is UUID v5 generated from the verbatim name-string using
	// DNS:"globalnames.org".
	NameID string `db:"name_id" ddl:"UUID" gorm:"column:name_id;type:uuid"`

	// ScientificName is the verbatim name from the lookup source.
	ScientificName string `db:"scientific_name" ddl:"VARCHAR(255) NOT NULL" gorm:"column:scientific_name;type:varchar(255);not null"`

	// CanonicalName is the parser's simple canonical form.
	CanonicalName string `db:"canonical_name" ddl:"VARCHAR(255)" gorm:"column:canonical_name;type:varchar(255)"`

	// Rank is the taxonomic rank of the name.
	Rank string `db:"rank" ddl:"VARCHAR(50)" gorm:"column:rank;type:varchar(50)"`

	// Lineage is the pipe-delimited classification breadcrumb.
	Lineage string `db:"lineage" ddl:"TEXT" gorm:"column:lineage;type:text"`

	// TrophicGroup is the taxon's trophic classification.
	TrophicGroup sql.NullString `db:"trophic_group" ddl:"VARCHAR(50)" gorm:"column:trophic_group;type:varchar(50)"`

	// LWA and LWB are the length-weight parameters of
	// W = a * L^b, grams and centimeters.
	LWA sql.NullFloat64 `db:"lw_a" ddl:"DOUBLE PRECISION" gorm:"column:lw_a;type:double precision"`
	LWB sql.NullFloat64 `db:"lw_b" ddl:"DOUBLE PRECISION" gorm:"column:lw_b;type:double precision"`

	// LengthToTL converts the measured length to total length.
	LengthToTL sql.NullFloat64 `db:"length_to_tl" ddl:"DOUBLE PRECISION" gorm:"column:length_to_tl;type:double precision"`

	// MaxLengthCM is the species' maximum recorded length.
	MaxLengthCM sql.NullFloat64 `db:"max_length_cm" ddl:"DOUBLE PRECISION" gorm:"column:max_length_cm;type:double precision"`

	// Status marks the lookup row's curation state; "accepted" rows
	// win duplicate-code tie-breaks during linking.
	Status string `db:"status" ddl:"VARCHAR(20) NOT NULL DEFAULT 'accepted'" gorm:"column:status;type:varchar(20);not null;default:'accepted'"`

	// ParseQuality: 0-no parse, 1-clear, 2-some problems, 3-big problems.
	ParseQuality int `db:"parse_quality" ddl:"INT NOT NULL DEFAULT 0" gorm:"column:parse_quality;type:int;not null;default:0"`
}
