package literal

import (
	"fmt"
	"log/slog"
)

// Cast converts l to the datatype to, returning a new literal owned by the
// caller. The result is built as a typed string and promoted, so casting
// "42" to xsd:integer yields an integer literal.
//
// Variables are followed to their binding; an absent value casts to nil
// with no error. A cast outside the legality matrix is a CAST error, and a
// lexical form the target rejects is a FORMAT error.
func Cast(l *Literal, to URI) (*Literal, error) {
	l = deref(l)
	if l == nil {
		return nil, nil
	}

	text, err := castText(l, to)
	if err != nil {
		return nil, err
	}

	slog.Debug("literal cast",
		"from", l.datatype,
		"to", to,
		"text", text)

	return NewString(text, "", to, "")
}

// castText checks the legality matrix and returns the lexical form the
// result is built from.
func castText(l *Literal, to URI) (string, error) {
	if l.datatype != "" && l.datatype == to {
		return l.lexical, nil
	}

	switch l.kind {
	case KindString:
		return l.lexical, nil

	case KindBoolean, KindInteger, KindDouble, KindFloat, KindDecimal:
		if to == XSDDateTime {
			return "", newCastError("cannot cast %s to %s", l.kind, to)
		}
		return l.lexical, nil

	case KindDateTime:
		if l.datatype != XSDString {
			return "", newCastError("cannot cast %s from datatype <%s> to %s", l.kind, l.datatype, to)
		}
		return l.lexical, nil

	case KindBlank, KindPattern, KindQName:
		return l.lexical, nil

	case KindURI:
		if to != XSDString {
			return "", newCastError("cannot cast uri to %s", to)
		}
		return string(l.uri), nil

	default:
		panic(fmt.Sprintf("literal: Cast of kind %s", l.kind))
	}
}
