// Package overrides applies manual per-expedition corrections as an
// explicit, versioned table instead of inlined conditional logic.
//
// Field campaigns accumulate known defects: a logger with a drifted
// clock, transposed coordinate digits, a misspelled site name. Those
// corrections live in an overrides YAML document keyed by
// (expedition_id, site_name), each with a recorded reason, and are
// applied as a discrete normalization step so the correction set stays
// auditable and testable on its own.
package overrides

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pristineseas/psdb/pkg/normalize"
	"github.com/pristineseas/psdb/pkg/tabular"
)

// Override replaces field values for one site of one expedition.
type Override struct {
	// ExpeditionID selects the expedition the correction belongs to.
	ExpeditionID string `yaml:"expedition_id"`

	// SiteName matches rows by their site_name field.
	SiteName string `yaml:"site_name"`

	// Reason records why the correction exists. Required: an override
	// without provenance is exactly the hard-coded literal this
	// design replaces.
	Reason string `yaml:"reason"`

	// Fields maps target field names to replacement values, carried
	// as text and coerced against the schema on application.
	Fields map[string]string `yaml:"fields"`
}

// Set is a versioned collection of overrides.
type Set struct {
	// Version increases whenever the correction set changes.
	Version int `yaml:"version"`

	Overrides []Override `yaml:"overrides"`
}

// FromYAML parses and validates an overrides document.
func FromYAML(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cannot parse overrides document: %w", err)
	}
	for i, o := range s.Overrides {
		if o.ExpeditionID == "" || o.SiteName == "" {
			return nil, fmt.Errorf(
				"override %d: expedition_id and site_name are required", i,
			)
		}
		if o.Reason == "" {
			return nil, fmt.Errorf(
				"override for %s/%s has no reason",
				o.ExpeditionID, o.SiteName,
			)
		}
		if len(o.Fields) == 0 {
			return nil, fmt.Errorf(
				"override for %s/%s replaces no fields",
				o.ExpeditionID, o.SiteName,
			)
		}
	}
	return &s, nil
}

// forExpedition returns the overrides of one expedition keyed by site
// name.
func (s *Set) forExpedition(expeditionID string) map[string]Override {
	res := make(map[string]Override)
	for _, o := range s.Overrides {
		if o.ExpeditionID == expeditionID {
			res[o.SiteName] = o
		}
	}
	return res
}

// siteNameCol is the column overrides match rows on.
const siteNameCol = "site_name"

// Apply replaces matching cells of a normalized table and records
// every replacement in the report as an "override applied" entry, so
// the upload audit trail shows which values were corrected by hand.
// The table must already be in target-schema shape.
func (s *Set) Apply(
	tab *tabular.Table,
	schema *tabular.Schema,
	expeditionID string,
	report *normalize.Report,
) (*tabular.Table, error) {
	bySite := s.forExpedition(expeditionID)
	if len(bySite) == 0 {
		return tab, nil
	}
	if !tab.HasColumn(siteNameCol) {
		return nil, fmt.Errorf(
			"table %s has no %s column; overrides cannot match rows",
			tab.Name(), siteNameCol,
		)
	}

	res := tab.Clone()
	for i := 0; i < res.Len(); i++ {
		name, _ := res.Cell(i, siteNameCol)
		o, ok := bySite[name.String()]
		if !ok {
			continue
		}

		// Sorted field order keeps the report deterministic.
		fields := make([]string, 0, len(o.Fields))
		for f := range o.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		for _, f := range fields {
			field, ok := schema.Field(f)
			if !ok {
				return nil, fmt.Errorf(
					"override for %s/%s: field %s is not in schema %s",
					o.ExpeditionID, o.SiteName, f, schema.Name,
				)
			}
			v, err := normalize.CoerceString(o.Fields[f], field.Type)
			if err != nil {
				return nil, fmt.Errorf(
					"override for %s/%s: field %s: %w",
					o.ExpeditionID, o.SiteName, f, err,
				)
			}
			res.SetCell(i, f, v)
			report.Issues = append(report.Issues, normalize.Issue{
				RowKey: o.SiteName,
				Field:  f,
				Issue:  "override applied: " + o.Reason,
			})
		}
	}
	return res, nil
}
