package expeditions

import (
	"fmt"
	"regexp"
	"time"

	"github.com/pristineseas/psdb/pkg/derive"
)

// idPattern is the expedition id format: ISO3 country code + year.
var idPattern = regexp.MustCompile(`^[A-Z]{3}_\d{4}$`)

// Validate checks the configuration for errors and applies defaults.
func (c *ExpeditionsConfig) Validate() error {
	if len(c.Expeditions) == 0 {
		return fmt.Errorf("no expeditions specified in configuration")
	}

	seen := make(map[string]bool, len(c.Expeditions))
	for i := range c.Expeditions {
		e := &c.Expeditions[i]
		if seen[e.ID] {
			return fmt.Errorf("expedition %s registered twice", e.ID)
		}
		seen[e.ID] = true

		warnings, err := e.Validate()
		if err != nil {
			return fmt.Errorf("expedition %d: %w", i+1, err)
		}
		c.Warnings = append(c.Warnings, warnings...)
	}
	return nil
}

// Validate checks a single expedition entry. File system validation
// (directory existence) is deferred to runtime (I/O layer). Returns a
// slice of warnings (non-fatal issues) and an error (fatal issues).
func (e *ExpeditionConfig) Validate() ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	if e.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	if !idPattern.MatchString(e.ID) {
		return nil, fmt.Errorf(
			"id %q does not match the ISO3_YYYY format (e.g. COL_2024)", e.ID,
		)
	}
	if len(e.Methods) == 0 {
		return nil, fmt.Errorf("expedition %s lists no methods", e.ID)
	}

	methodSeen := make(map[string]bool, len(e.Methods))
	for _, mc := range e.Methods {
		if mc.Method == "" {
			return nil, fmt.Errorf("expedition %s has a method without a code", e.ID)
		}
		if methodSeen[mc.Method] {
			return nil, fmt.Errorf(
				"expedition %s lists method %s twice", e.ID, mc.Method,
			)
		}
		methodSeen[mc.Method] = true

		if !derive.Method(mc.Method).Known() {
			return nil, fmt.Errorf(
				"expedition %s: method %s has no derivation rules",
				e.ID, mc.Method,
			)
		}
		if mc.SitesMapping == "" {
			warnings = append(warnings, ValidationWarning{
				ExpeditionID: e.ID,
				Field:        "sites_mapping",
				Message: fmt.Sprintf(
					"method %s has no sites mapping", mc.Method),
				Suggestion: "set 'sites_mapping' to the mapping document " +
					"for this method's site export",
			})
		}
	}

	for _, d := range []struct{ field, val string }{
		{"start_date", e.StartDate},
		{"end_date", e.EndDate},
	} {
		if d.val == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d.val); err != nil {
			warnings = append(warnings, ValidationWarning{
				ExpeditionID: e.ID,
				Field:        d.field,
				Message:      fmt.Sprintf("%q is not a YYYY-MM-DD date", d.val),
				Suggestion:   "use ISO dates, e.g. 2024-03-17",
			})
		}
	}
	return warnings, nil
}
