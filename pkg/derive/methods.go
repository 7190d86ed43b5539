package derive

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pristineseas/psdb/pkg/tabular"
)

// Method is a survey technique. It selects the schema extension, the
// site sequence width and the station suffix rule.
type Method string

const (
	// MethodUVS is an underwater visual census.
	MethodUVS Method = "uvs"
	// MethodFish is a fish belt transect survey.
	MethodFish Method = "fish"
	// MethodLPI is a benthic line-point-intercept survey.
	MethodLPI Method = "lpi"
	// MethodSub is a submersible dive.
	MethodSub Method = "sub"
	// MethodPBRUV is a pelagic baited remote underwater video rig.
	MethodPBRUV Method = "pbruv"
	// MethodSBRUV is a seabed baited remote underwater video rig.
	MethodSBRUV Method = "sbruvs"
	// MethodDSCM is a deep-sea camera deployment.
	MethodDSCM Method = "dscm"
	// MethodEDNA is an environmental DNA sampling station.
	MethodEDNA Method = "edna"
)

// Known reports whether the method has registered derivation rules.
func (m Method) Known() bool {
	switch m {
	case MethodUVS, MethodFish, MethodLPI, MethodSub,
		MethodPBRUV, MethodSBRUV, MethodDSCM, MethodEDNA:
		return true
	}
	return false
}

// seqWidth is the zero-padding width of the site sequence number.
// Two legacy methods kept their historical two-digit numbering; all
// newer methods use three digits.
func (m Method) seqWidth() int {
	switch m {
	case MethodPBRUV, MethodDSCM:
		return 2
	}
	return 3
}

// suffixField names the row field the station suffix is derived from.
// Empty for single-station methods with a constant suffix.
func (m Method) suffixField() string {
	switch m {
	case MethodUVS, MethodFish, MethodLPI, MethodEDNA:
		return "depth_m"
	case MethodSub:
		return "transect_depth_m"
	case MethodPBRUV:
		return "rig"
	}
	return ""
}

// stationSuffix derives the station suffix from a row's own fields.
// Pure: the same row always yields the same suffix. A missing or null
// suffix field is an error; the suffix is never guessed.
func (m Method) stationSuffix(row rowView) (string, error) {
	field := m.suffixField()
	if field == "" {
		// single-station methods (dscm, sbruvs)
		return "stn", nil
	}

	v, ok := row.cell(field)
	if !ok || v.IsNull() {
		return "", fmt.Errorf("field %s is missing", field)
	}

	switch m {
	case MethodPBRUV:
		s := strings.ToLower(strings.TrimSpace(v.String()))
		if s == "" {
			return "", fmt.Errorf("field %s is empty", field)
		}
		return s, nil
	default:
		var depth float64
		switch v.Kind() {
		case tabular.Float, tabular.Integer:
			depth = v.Float64()
		case tabular.Numeric:
			// NUMERIC cells carry their canonical decimal string.
			f, err := strconv.ParseFloat(v.String(), 64)
			if err != nil {
				return "", fmt.Errorf("field %s is not numeric", field)
			}
			depth = f
		default:
			return "", fmt.Errorf("field %s is not numeric", field)
		}
		return fmt.Sprintf("%dm", int(math.Round(depth))), nil
	}
}

// rowView narrows a table row to cell lookup during suffix derivation.
type rowView struct {
	tab *tabular.Table
	i   int
}

func (r rowView) cell(name string) (tabular.Value, bool) {
	return r.tab.Cell(r.i, name)
}
