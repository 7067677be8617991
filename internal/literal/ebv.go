package literal

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// EBV returns the effective boolean value of l.
//
// The result is false for an unbound variable, a boolean false, an untyped
// or xsd:string literal with empty text, a numeric literal equal to zero
// and a double or float NaN. Everything else is true.
func EBV(l *Literal) bool {
	if l != nil && l.kind == KindVariable {
		l = l.variable.binding()
	}
	if l == nil {
		return false
	}

	switch l.kind {
	case KindBoolean:
		return l.integer != 0
	case KindString:
		if (l.datatype == "" || l.datatype == XSDString) && l.lexical == "" {
			return false
		}
	case KindInteger:
		return l.integer != 0
	case KindDouble, KindFloat:
		return l.floating != 0 && !math.IsNaN(l.floating)
	case KindDecimal:
		return !decimalIsZero(l.lexical)
	}
	return true
}

// decimalIsZero tests the exact decimal value of text, so "0.000" and
// "-0.0E5" are zero while "0.0000000000000000000001" is not.
func decimalIsZero(text string) bool {
	d, _, err := apd.NewFromString(text)
	if err == nil {
		return d.IsZero()
	}
	f, err := strconv.ParseFloat(text, 64)
	return err == nil && f == 0
}
