package tabular_test

import (
	"testing"

	"github.com/pristineseas/psdb/pkg/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  tabular.Type
		ok    bool
	}{
		{name: "string", input: "STRING", want: tabular.String, ok: true},
		{name: "integer", input: "INTEGER", want: tabular.Integer, ok: true},
		{name: "float", input: "FLOAT", want: tabular.Float, ok: true},
		{name: "boolean", input: "BOOLEAN", want: tabular.Boolean, ok: true},
		{name: "date", input: "DATE", want: tabular.Date, ok: true},
		{name: "time", input: "TIME", want: tabular.Time, ok: true},
		{name: "numeric", input: "NUMERIC", want: tabular.Numeric, ok: true},
		{name: "lowercase rejected", input: "string", ok: false},
		{name: "unknown", input: "BLOB", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tabular.ParseType(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		val  tabular.Value
		want string
	}{
		{name: "string", val: tabular.NewString("Motu One"), want: "Motu One"},
		{name: "integer", val: tabular.NewInt(42), want: "42"},
		{name: "float", val: tabular.NewFloat(10.5), want: "10.5"},
		{name: "float no trailing zeros", val: tabular.NewFloat(10.0), want: "10"},
		{name: "boolean", val: tabular.NewBool(true), want: "true"},
		{name: "date", val: tabular.NewDate("2024-03-15"), want: "2024-03-15"},
		{name: "time", val: tabular.NewTime("09:30"), want: "09:30"},
		{name: "numeric", val: tabular.NewNumeric("-17.53278"), want: "-17.53278"},
		{name: "null string", val: tabular.NewNull(tabular.String), want: ""},
		{name: "null integer", val: tabular.NewNull(tabular.Integer), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.val.String())
		})
	}
}

func TestFromCanonical(t *testing.T) {
	tests := []struct {
		name  string
		kind  tabular.Type
		input string
		want  tabular.Value
	}{
		{
			name:  "integer round trip",
			kind:  tabular.Integer,
			input: "42",
			want:  tabular.NewInt(42),
		},
		{
			name:  "float round trip",
			kind:  tabular.Float,
			input: "10.5",
			want:  tabular.NewFloat(10.5),
		},
		{
			name:  "boolean round trip",
			kind:  tabular.Boolean,
			input: "true",
			want:  tabular.NewBool(true),
		},
		{
			name:  "numeric keeps text verbatim",
			kind:  tabular.Numeric,
			input: "-17.53278",
			want:  tabular.NewNumeric("-17.53278"),
		},
		{
			name:  "empty string becomes typed null",
			kind:  tabular.Float,
			input: "",
			want:  tabular.NewNull(tabular.Float),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tabular.FromCanonical(tt.kind, tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			// String must be the exact inverse.
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestFromCanonicalBadInput(t *testing.T) {
	_, err := tabular.FromCanonical(tabular.Integer, "not-a-number")
	assert.Error(t, err)

	_, err = tabular.FromCanonical(tabular.Boolean, "si")
	assert.Error(t, err)
}

func TestValueEqual(t *testing.T) {
	assert.True(t, tabular.NewInt(3).Equal(tabular.NewInt(3)))
	assert.False(t, tabular.NewInt(3).Equal(tabular.NewInt(4)))
	assert.False(t, tabular.NewInt(3).Equal(tabular.NewFloat(3)))
	assert.True(t,
		tabular.NewNull(tabular.String).Equal(tabular.NewNull(tabular.String)))
	assert.False(t,
		tabular.NewNull(tabular.String).Equal(tabular.NewString("")))
}
