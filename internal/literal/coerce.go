package literal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// AsBoolean returns the boolean interpretation of l. Variables are followed
// to their binding; an absent value is false with no error.
func AsBoolean(l *Literal) (bool, error) {
	l = deref(l)
	if l == nil {
		return false, nil
	}

	switch l.kind {
	case KindString:
		if l.datatype != "" && l.datatype != XSDString {
			return false, newTypeError("cannot use %s typed string as boolean", l.datatype)
		}
		return l.lexical != "", nil

	case KindURI, KindBlank, KindPattern, KindQName, KindDecimal, KindDateTime:
		return false, newTypeError("cannot use %s literal as boolean", l.kind)

	case KindInteger, KindBoolean:
		return l.integer != 0, nil

	case KindDouble, KindFloat:
		return l.floating != 0 && !math.IsNaN(l.floating), nil

	default:
		panic(fmt.Sprintf("literal: AsBoolean of kind %s", l.kind))
	}
}

// AsInteger returns the integer interpretation of l. Floating values
// truncate toward zero; strings parse as an integer first, then as a float.
func AsInteger(l *Literal) (int64, error) {
	l = deref(l)
	if l == nil {
		return 0, nil
	}

	switch l.kind {
	case KindInteger:
		return l.integer, nil

	case KindBoolean:
		if l.integer != 0 {
			return 1, nil
		}
		return 0, nil

	case KindDouble, KindFloat:
		return truncate(l.floating)

	case KindString:
		if v, err := strconv.ParseInt(l.lexical, 10, 64); err == nil {
			return v, nil
		}
		if d, err := strconv.ParseFloat(l.lexical, 64); err == nil {
			return truncate(d)
		}
		return 0, newTypeError("string '%s' is not an integer", l.lexical)

	case KindBlank, KindURI, KindQName, KindPattern, KindDecimal, KindDateTime:
		return 0, newTypeError("cannot use %s literal as integer", l.kind)

	default:
		panic(fmt.Sprintf("literal: AsInteger of kind %s", l.kind))
	}
}

func truncate(d float64) (int64, error) {
	if math.IsNaN(d) || d >= math.MaxInt64 || d < math.MinInt64 {
		return 0, newTypeError("floating value %g does not fit an integer", d)
	}
	return int64(d), nil
}

// AsFloating returns the floating interpretation of l. Decimals and strings
// must parse completely.
func AsFloating(l *Literal) (float64, error) {
	l = deref(l)
	if l == nil {
		return 0, nil
	}

	switch l.kind {
	case KindInteger, KindBoolean:
		return float64(l.integer), nil

	case KindDouble, KindFloat:
		return l.floating, nil

	case KindDecimal, KindString:
		d, err := strconv.ParseFloat(l.lexical, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, newTypeError("%s '%s' is not a floating value", l.kind, l.lexical)
		}
		return d, nil

	case KindBlank, KindURI, KindQName, KindPattern, KindDateTime:
		return 0, newTypeError("cannot use %s literal as floating", l.kind)

	default:
		panic(fmt.Sprintf("literal: AsFloating of kind %s", l.kind))
	}
}

// AsURI returns the URI of a URI literal, following variables. Calling it
// on any other kind is a programming error and panics.
func AsURI(l *Literal) URI {
	if l == nil {
		return ""
	}
	if l.kind == KindVariable {
		if l.variable == nil {
			return ""
		}
		return AsURI(l.variable.Value)
	}
	if l.kind != KindURI {
		panic(fmt.Sprintf("literal: AsURI of %s literal", l.kind))
	}
	return l.uri
}

// AsString returns the lexical form of l. URIs render as their text except
// under CompareXQuery, where a URI has no string value.
func AsString(l *Literal, flags CompareFlags) (string, error) {
	if l == nil {
		return "", nil
	}

	switch l.kind {
	case KindBoolean, KindInteger, KindDouble, KindString, KindBlank,
		KindPattern, KindQName, KindFloat, KindDecimal, KindDateTime:
		return l.lexical, nil

	case KindURI:
		if flags&CompareXQuery != 0 {
			return "", newTypeError("uri <%s> has no string value", l.uri)
		}
		return string(l.uri), nil

	case KindVariable:
		if l.variable == nil {
			return "", nil
		}
		return AsString(l.variable.Value, flags)

	default:
		panic(fmt.Sprintf("literal: AsString of kind %s", l.kind))
	}
}

// Text returns the lexical form of l with URIs rendered as text.
func (l *Literal) Text() string {
	s, _ := AsString(l, 0)
	return s
}

// AsVariable returns the variable behind a variable literal, or nil.
func AsVariable(l *Literal) *Variable {
	if l == nil || l.kind != KindVariable {
		return nil
	}
	return l.variable
}

// Datatype returns the datatype URI of l, following variables. Plain
// strings, URIs and blank nodes have none.
func (l *Literal) Datatype() URI {
	l = deref(l)
	if l == nil {
		return ""
	}
	return l.datatype
}
