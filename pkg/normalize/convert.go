package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pristineseas/psdb/pkg/tabular"
)

// Converter names accepted in column mappings. The empty name means
// plain coercion to the target field's type.
const (
	// ConvertDDM parses degree-decimal-minute coordinates into WGS84
	// decimal degrees, south and west negative.
	ConvertDDM = "ddm_to_decimal"

	// ConvertTime12h parses 12-hour clock strings into 24-hour "15:04".
	ConvertTime12h = "time_12h"
)

// numericJunk strips units and symbols before lenient numeric parsing.
var numericJunk = regexp.MustCompile(`[^0-9eE+\-.]`)

// ddmPattern matches "12 34.567 S", "12°34.567'S" and similar forms.
var ddmPattern = regexp.MustCompile(
	`^\s*(-?\d+)[°\s]+(\d+(?:\.\d+)?)['\s]*([NSEWnsew]?)\s*$`,
)

// convert applies a named converter or, with an empty name, coerces
// the value to the field's declared type. A non-nil error means the
// cell becomes null and the failure enters the report.
func convert(v tabular.Value, name string, target tabular.Type) (tabular.Value, error) {
	if v.IsNull() {
		return tabular.NewNull(target), nil
	}
	switch name {
	case "":
		return coerce(v, target)
	case ConvertDDM:
		return ddmToDecimal(v.String())
	case ConvertTime12h:
		return clock24(v.String())
	default:
		return tabular.NewNull(target),
			fmt.Errorf("unknown converter %q", name)
	}
}

// coerce converts a value to the declared type. Values already of the
// target type pass through unchanged, which keeps normalization of
// already-normalized tables a no-op.
func coerce(v tabular.Value, target tabular.Type) (tabular.Value, error) {
	if v.Kind() == target {
		return v, nil
	}
	s := strings.TrimSpace(v.String())

	switch target {
	case tabular.String:
		return tabular.NewString(v.String()), nil

	case tabular.Integer:
		if v.Kind() == tabular.Float {
			f := v.Float64()
			if f != float64(int64(f)) {
				return tabular.NewNull(target),
					fmt.Errorf("%s is not an integer", v.String())
			}
			return tabular.NewInt(int64(f)), nil
		}
		f, err := lenientFloat(s)
		if err != nil {
			return tabular.NewNull(target), err
		}
		if f != float64(int64(f)) {
			return tabular.NewNull(target),
				fmt.Errorf("%s is not an integer", s)
		}
		return tabular.NewInt(int64(f)), nil

	case tabular.Float:
		if v.Kind() == tabular.Integer {
			return tabular.NewFloat(v.Float64()), nil
		}
		f, err := lenientFloat(s)
		if err != nil {
			return tabular.NewNull(target), err
		}
		return tabular.NewFloat(f), nil

	case tabular.Numeric:
		f, err := lenientFloat(s)
		if err != nil {
			return tabular.NewNull(target), err
		}
		return tabular.NewNumeric(strconv.FormatFloat(f, 'g', -1, 64)), nil

	case tabular.Boolean:
		switch strings.ToLower(s) {
		case "true", "t", "yes", "y", "1":
			return tabular.NewBool(true), nil
		case "false", "f", "no", "n", "0":
			return tabular.NewBool(false), nil
		}
		return tabular.NewNull(target),
			fmt.Errorf("%s is not a boolean", s)

	case tabular.Date:
		return date(s)

	case tabular.Time:
		return clock24(s)
	}
	return tabular.NewNull(target),
		fmt.Errorf("unsupported target type %s", target)
}

// lenientFloat parses numbers with units or symbols attached, e.g.
// "18.2 m" or "1,250". The stripped form must still be a number.
func lenientFloat(s string) (float64, error) {
	cleaned := numericJunk.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, fmt.Errorf("%q is not numeric", s)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not numeric", s)
	}
	return f, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"2-Jan-2006",
}

// date parses common spreadsheet date renderings into the canonical
// "2006-01-02" form.
func date(s string) (tabular.Value, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return tabular.NewDate(t.Format("2006-01-02")), nil
		}
	}
	return tabular.NewNull(tabular.Date),
		fmt.Errorf("%q is not a date", s)
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"03:04 PM",
	"3:04 pm",
}

// clock24 parses 12- and 24-hour clock strings into canonical "15:04".
func clock24(s string) (tabular.Value, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return tabular.NewTime(t.Format("15:04")), nil
		}
	}
	return tabular.NewNull(tabular.Time),
		fmt.Errorf("%q is not a time of day", s)
}

// ddmToDecimal converts degree-decimal-minute coordinates to decimal
// degrees. A trailing S or W hemisphere makes the result negative.
func ddmToDecimal(s string) (tabular.Value, error) {
	m := ddmPattern.FindStringSubmatch(s)
	if m == nil {
		return tabular.NewNull(tabular.Float),
			fmt.Errorf("%q is not a degree-minute coordinate", s)
	}
	deg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return tabular.NewNull(tabular.Float),
			fmt.Errorf("%q is not a degree-minute coordinate", s)
	}
	minutes, err := strconv.ParseFloat(m[2], 64)
	if err != nil || minutes >= 60 {
		return tabular.NewNull(tabular.Float),
			fmt.Errorf("%q has invalid minutes", s)
	}

	neg := deg < 0
	if neg {
		deg = -deg
	}
	res := deg + minutes/60
	switch strings.ToUpper(m[3]) {
	case "S", "W":
		neg = true
	}
	if neg {
		res = -res
	}
	return tabular.NewFloat(res), nil
}

// CoerceString converts a raw replacement string to a typed value.
// Used by override application, which carries values as text in YAML.
func CoerceString(s string, target tabular.Type) (tabular.Value, error) {
	return coerce(tabular.NewString(s), target)
}
