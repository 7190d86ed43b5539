// Package expeditions provides configuration and validation for the
// expedition registry.
//
// This package defines the schema for expeditions.yaml, which users
// provide to describe each field campaign: its identifier, dates, the
// survey methods conducted, and where its raw exports live. It handles
// validation and filtering; reading the export files themselves is the
// I/O layer's job.
package expeditions

import "path/filepath"

type Expeditions interface {
	Load() (*ExpeditionsConfig, error)
}

// ExpeditionsConfig represents the complete expeditions.yaml
// configuration file.
type ExpeditionsConfig struct {
	// Expeditions is the list of registered field campaigns.
	Expeditions []ExpeditionConfig `yaml:"expeditions"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	ExpeditionID string // ID of the expedition
	Field        string // Field name that has the issue
	Message      string // Description of the issue
	Suggestion   string // How to fix it
}

// ExpeditionConfig represents configuration for a single expedition.
type ExpeditionConfig struct {
	// ID identifies the expedition: ISO3 country code plus year,
	// e.g. COL_2024. It prefixes every derived identifier.
	ID string `yaml:"id"`

	// Name is the descriptive campaign title.
	Name string `yaml:"name,omitempty"`

	// Country is the ISO3 code of the host country.
	Country string `yaml:"country,omitempty"`

	// Vessel is the research vessel's name.
	Vessel string `yaml:"vessel,omitempty"`

	// Leader is the expedition lead.
	Leader string `yaml:"leader,omitempty"`

	// StartDate and EndDate bound the campaign, format YYYY-MM-DD.
	StartDate string `yaml:"start_date,omitempty"`
	EndDate   string `yaml:"end_date,omitempty"`

	// Parent is the directory containing this expedition's raw
	// exports. Empty defaults to {ingest.data_dir}/{id}.
	// Export files are matched by pattern: {id}_{method}_*.csv or
	// {id}_{method}_*.sqlite; the latest file wins when several match.
	Parent string `yaml:"parent,omitempty"`

	// Methods lists the survey methods conducted on this expedition.
	Methods []MethodConfig `yaml:"methods"`

	// OverridesFile points at the expedition's manual-correction
	// document, relative to Parent. Optional.
	OverridesFile string `yaml:"overrides_file,omitempty"`
}

// MethodConfig describes one survey method of an expedition.
type MethodConfig struct {
	// Method is the survey technique code (uvs, fish, lpi, sub,
	// pbruv, sbruvs, dscm, edna).
	Method string `yaml:"method"`

	// SitesMapping and ObservationsMapping point at the column
	// mapping documents for this method's exports, relative to the
	// expedition's Parent directory.
	SitesMapping        string `yaml:"sites_mapping"`
	ObservationsMapping string `yaml:"observations_mapping,omitempty"`
}

// Filter returns the expeditions matching the requested IDs, or all of
// them when the request is empty. Order follows the registry.
func (c *ExpeditionsConfig) Filter(ids []string) []ExpeditionConfig {
	if len(ids) == 0 {
		return c.Expeditions
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var res []ExpeditionConfig
	for _, e := range c.Expeditions {
		if want[e.ID] {
			res = append(res, e)
		}
	}
	return res
}

// MethodCodes returns the expedition's method codes, restricted to the
// requested methods when the request is non-empty.
func (e *ExpeditionConfig) MethodCodes(methods []string) []string {
	want := make(map[string]bool, len(methods))
	for _, m := range methods {
		want[m] = true
	}
	var res []string
	for _, mc := range e.Methods {
		if len(methods) == 0 || want[mc.Method] {
			res = append(res, mc.Method)
		}
	}
	return res
}

// ExportDir returns the directory holding the expedition's raw
// exports, mapping and overrides files: Parent when set (resolved
// against dataDir when relative), otherwise {dataDir}/{ID}.
func (e *ExpeditionConfig) ExportDir(dataDir string) string {
	if e.Parent == "" {
		return filepath.Join(dataDir, e.ID)
	}
	if filepath.IsAbs(e.Parent) {
		return e.Parent
	}
	return filepath.Join(dataDir, e.Parent)
}

// MethodConfig returns the configuration of one method code.
func (e *ExpeditionConfig) MethodConfig(method string) (MethodConfig, bool) {
	for _, mc := range e.Methods {
		if mc.Method == method {
			return mc, true
		}
	}
	return MethodConfig{}, false
}
