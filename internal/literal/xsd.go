package literal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// XML Schema datatype URIs.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

	XSDString   URI = XSDNamespace + "string"
	XSDBoolean  URI = XSDNamespace + "boolean"
	XSDInteger  URI = XSDNamespace + "integer"
	XSDDouble   URI = XSDNamespace + "double"
	XSDFloat    URI = XSDNamespace + "float"
	XSDDecimal  URI = XSDNamespace + "decimal"
	XSDDateTime URI = XSDNamespace + "dateTime"
)

// Datatype is one entry of the XSD registry: a datatype URI, the native
// kind a valid lexical form promotes to, and the lexical validator.
type Datatype struct {
	Label string
	URI   URI
	Kind  Kind
	Check func(text string) bool
}

var xsdDatatypes = []Datatype{
	{Label: "boolean", URI: XSDBoolean, Kind: KindBoolean, Check: checkBoolean},
	{Label: "integer", URI: XSDInteger, Kind: KindInteger, Check: checkInteger},
	{Label: "double", URI: XSDDouble, Kind: KindDouble, Check: checkDouble},
	{Label: "float", URI: XSDFloat, Kind: KindFloat, Check: checkFloat},
	{Label: "decimal", URI: XSDDecimal, Kind: KindDecimal, Check: checkDecimal},
	{Label: "dateTime", URI: XSDDateTime, Kind: KindDateTime, Check: checkDateTime},
}

var xsdByURI = func() map[URI]*Datatype {
	m := make(map[URI]*Datatype, len(xsdDatatypes))
	for i := range xsdDatatypes {
		m[xsdDatatypes[i].URI] = &xsdDatatypes[i]
	}
	return m
}()

// LookupDatatype returns the registry entry for a datatype URI.
func LookupDatatype(u URI) (Datatype, bool) {
	dt, ok := xsdByURI[u]
	if !ok {
		return Datatype{}, false
	}
	return *dt, true
}

// Datatypes returns the registry entries in registry order.
func Datatypes() []Datatype {
	out := make([]Datatype, len(xsdDatatypes))
	copy(out, xsdDatatypes)
	return out
}

func checkBoolean(s string) bool {
	switch s {
	case "true", "TRUE", "1", "false", "FALSE", "0":
		return true
	}
	return false
}

func checkInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// checkDouble accepts any floating form that parses completely.
// Magnitudes beyond float64 are still well-formed.
func checkDouble(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// checkDecimal shares the double check, so exponent forms produced by
// casting a double are accepted.
func checkDecimal(s string) bool {
	return checkDouble(s)
}

var floatLexical = regexp.MustCompile(`^(?:[+-]?(?:(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?|INF)|NaN)$`)

// checkFloat applies the xsd:float lexical grammar and requires the value
// to fit a 32-bit float.
func checkFloat(s string) bool {
	if !floatLexical.MatchString(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 32)
	return err == nil
}

// dateTimeLexical is a structural check only; field ranges are not
// validated, so 9999-99-99T99:99:99Z passes.
var dateTimeLexical = regexp.MustCompile(`^-?[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]*)?Z?$`)

func checkDateTime(s string) bool {
	return dateTimeLexical.MatchString(s)
}

// promote rewrites a datatyped string literal in place to its native kind.
// Literals without a registry datatype are left untouched.
func (l *Literal) promote() error {
	if l.datatype == "" {
		return nil
	}
	dt, ok := xsdByURI[l.datatype]
	if !ok {
		return nil
	}

	if !dt.Check(l.lexical) {
		return newFormatError(dt.Label, l.lexical)
	}

	l.language = ""
	l.kind = dt.Kind

	switch dt.Kind {
	case KindInteger:
		v, err := strconv.ParseInt(l.lexical, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("literal: validated integer %q failed to parse: %v", l.lexical, err))
		}
		l.integer = v

	case KindDouble:
		v, _ := strconv.ParseFloat(l.lexical, 64)
		l.floating = v

	case KindFloat:
		v, _ := strconv.ParseFloat(l.lexical, 32)
		l.floating = v

	case KindBoolean:
		switch l.lexical {
		case "true", "TRUE", "1":
			l.setBoolean(true)
		default:
			l.setBoolean(false)
		}

	case KindDecimal, KindDateTime:
		// kept as text

	default:
		panic(fmt.Sprintf("literal: unexpected native kind %s", dt.Kind))
	}

	return nil
}
