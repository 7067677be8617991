package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		datatype URI
		text     string
		valid    bool
	}{
		{XSDBoolean, "true", true},
		{XSDBoolean, "FALSE", true},
		{XSDBoolean, "0", true},
		{XSDBoolean, "True", false},
		{XSDBoolean, "yes", false},

		{XSDInteger, "0", true},
		{XSDInteger, "+12", true},
		{XSDInteger, "-12", true},
		{XSDInteger, "12abc", false},
		{XSDInteger, "1.0", false},
		{XSDInteger, "", false},
		{XSDInteger, "99999999999999999999", false},

		{XSDDouble, "1", true},
		{XSDDouble, "1.5e-3", true},
		{XSDDouble, "1e400", true},
		{XSDDouble, "NaN", true},
		{XSDDouble, "1.5x", false},
		{XSDDouble, "", false},

		{XSDFloat, "1.5", true},
		{XSDFloat, ".5", true},
		{XSDFloat, "5.", true},
		{XSDFloat, "-1E4", true},
		{XSDFloat, "INF", true},
		{XSDFloat, "-INF", true},
		{XSDFloat, "NaN", true},
		{XSDFloat, "inf", false},
		{XSDFloat, "1e39", false},
		{XSDFloat, "0x1p3", false},
		{XSDFloat, "abc", false},

		{XSDDecimal, "3.14", true},
		{XSDDecimal, "-0.0", true},
		{XSDDecimal, "3.14.15", false},
		{XSDDecimal, "1e5", true},
		{XSDDecimal, "1e+21", true},
		{XSDDecimal, "+12", true},
		{XSDDecimal, "", false},
		{XSDDecimal, "12abc", false},

		{XSDDateTime, "2020-01-01T00:00:00", true},
		{XSDDateTime, "2020-01-01T00:00:00Z", true},
		{XSDDateTime, "-0044-03-15T12:00:00.123Z", true},
		{XSDDateTime, "9999-99-99T99:99:99Z", true},
		{XSDDateTime, "2020-01-01", false},
		{XSDDateTime, "2020-1-01T00:00:00", false},
		{XSDDateTime, "2020-01-01T00:00:00+01:00", false},
	}

	for _, tt := range tests {
		dt, ok := LookupDatatype(tt.datatype)
		if !assert.True(t, ok, tt.datatype) {
			continue
		}
		assert.Equal(t, tt.valid, dt.Check(tt.text), "%s %q", dt.Label, tt.text)
	}
}

func TestRegistryEntries(t *testing.T) {
	dts := Datatypes()

	labels := make([]string, 0, len(dts))
	for _, dt := range dts {
		labels = append(labels, dt.Label)
	}
	assert.Equal(t, []string{"boolean", "integer", "double", "float", "decimal", "dateTime"}, labels)

	_, ok := LookupDatatype(XSDString)
	assert.False(t, ok)

	dts[0].Label = "changed"
	again, _ := LookupDatatype(XSDBoolean)
	assert.Equal(t, "boolean", again.Label)
}

func TestPromotionClearsLanguage(t *testing.T) {
	l := &Literal{kind: KindString, lexical: "5", language: "en", datatype: XSDInteger, usage: 1}

	err := l.promote()

	assert.NoError(t, err)
	assert.Equal(t, KindInteger, l.Kind())
	assert.Empty(t, l.Language())
}
