package tabular

import (
	"fmt"
	"strconv"
)

// Type is the semantic type of a schema field.
type Type int

const (
	String Type = iota
	Integer
	Float
	Boolean
	Date
	Time
	Numeric
)

var typeNames = map[Type]string{
	String:  "STRING",
	Integer: "INTEGER",
	Float:   "FLOAT",
	Boolean: "BOOLEAN",
	Date:    "DATE",
	Time:    "TIME",
	Numeric: "NUMERIC",
}

var typesByName = func() map[string]Type {
	res := make(map[string]Type)
	for k, v := range typeNames {
		res[v] = k
	}
	return res
}()

// String returns the type name as it appears in schema files.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "STRING"
}

// ParseType converts a schema file type name to a Type.
func ParseType(s string) (Type, bool) {
	t, ok := typesByName[s]
	return t, ok
}

// Value is one typed cell of a table. The zero value is a null STRING.
//
// DATE, TIME and NUMERIC values carry their canonical textual form
// ("2006-01-02", "15:04", decimal string). Keeping them textual makes
// table output byte-identical across runs regardless of locale or
// float formatting quirks.
type Value struct {
	kind Type
	null bool
	s    string
	i    int64
	f    float64
	b    bool
}

// NewString creates a STRING value.
func NewString(s string) Value {
	return Value{kind: String, s: s}
}

// NewInt creates an INTEGER value.
func NewInt(i int64) Value {
	return Value{kind: Integer, i: i}
}

// NewFloat creates a FLOAT value.
func NewFloat(f float64) Value {
	return Value{kind: Float, f: f}
}

// NewBool creates a BOOLEAN value.
func NewBool(b bool) Value {
	return Value{kind: Boolean, b: b}
}

// NewDate creates a DATE value from its canonical "2006-01-02" form.
func NewDate(s string) Value {
	return Value{kind: Date, s: s}
}

// NewTime creates a TIME value from its canonical "15:04" form.
func NewTime(s string) Value {
	return Value{kind: Time, s: s}
}

// NewNumeric creates a NUMERIC value from a canonical decimal string.
func NewNumeric(s string) Value {
	return Value{kind: Numeric, s: s}
}

// NewNull creates a typed null.
func NewNull(kind Type) Value {
	return Value{kind: kind, null: true}
}

// Kind returns the value's semantic type.
func (v Value) Kind() Type {
	return v.kind
}

// IsNull reports whether the value is a typed null.
func (v Value) IsNull() bool {
	return v.null
}

// Int64 returns the integer payload. Zero for nulls and non-integers.
func (v Value) Int64() int64 {
	return v.i
}

// Float64 returns the numeric payload of FLOAT and INTEGER values.
func (v Value) Float64() float64 {
	if v.kind == Integer {
		return float64(v.i)
	}
	return v.f
}

// Bool returns the boolean payload.
func (v Value) Bool() bool {
	return v.b
}

// String returns the canonical textual form of the value. Nulls render
// as the empty string; this rendering is the one hashed by
// Table.Checksum, so it must stay stable.
func (v Value) String() string {
	if v.null {
		return ""
	}
	switch v.kind {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// FromCanonical reconstructs a value of the given type from its
// canonical textual form, the inverse of String. An empty string
// yields a typed null.
func FromCanonical(kind Type, s string) (Value, error) {
	if s == "" {
		return NewNull(kind), nil
	}
	switch kind {
	case Integer:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("bad canonical integer %q", s)
		}
		return NewInt(i), nil
	case Float:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("bad canonical float %q", s)
		}
		return NewFloat(f), nil
	case Boolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, fmt.Errorf("bad canonical boolean %q", s)
		}
		return NewBool(b), nil
	case Date:
		return NewDate(s), nil
	case Time:
		return NewTime(s), nil
	case Numeric:
		return NewNumeric(s), nil
	default:
		return NewString(s), nil
	}
}

// Equal reports whether two values have the same type, nullness and
// payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.null != other.null {
		return false
	}
	if v.null {
		return true
	}
	return v.String() == other.String()
}
