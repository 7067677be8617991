package literal

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
)

// CompareFlags select the comparison regime.
type CompareFlags uint

const (
	// CompareNoCase compares lexical forms case-insensitively.
	CompareNoCase CompareFlags = 1 << iota

	// CompareXQuery applies standards type promotion: numeric operands of
	// different kinds promote to double and any other mixed pair orders by
	// kind rank.
	CompareXQuery
)

// ErrUnboundOperand is reported when exactly one operand of a comparison
// has no value.
var ErrUnboundOperand = newTypeError("comparison against an absent value")

// Compare orders l1 against l2 strcmp-style: negative when l1 sorts first,
// zero when equal, positive when l1 sorts after l2.
//
// Variables are followed to their bindings. Two absent operands are equal;
// one absent operand is an error. An operand that cannot be promoted to the
// common kind makes the pair unequal (1) without an error.
func Compare(l1, l2 *Literal, flags CompareFlags) (int, error) {
	lits := [2]*Literal{deref(l1), deref(l2)}

	if lits[0] == nil || lits[1] == nil {
		if lits[0] != nil || lits[1] != nil {
			return 0, ErrUnboundOperand
		}
		return 0, nil
	}

	var (
		ints    [2]int64
		doubles [2]float64
		texts   [2]string

		seenString, seenInt, seenDouble, seenNumeric int
		seenBoolean                                  bool
	)

	for i, l := range lits {
		switch l.kind {
		case KindURI:
		case KindDecimal:
			seenNumeric++
			texts[i] = l.lexical
		case KindString, KindBlank, KindPattern, KindQName, KindDateTime:
			texts[i] = l.lexical
			seenString++
		case KindBoolean:
			seenBoolean = true
			ints[i] = l.integer
		case KindInteger:
			ints[i] = l.integer
			seenInt++
			seenNumeric++
		case KindDouble, KindFloat:
			doubles[i] = l.floating
			seenDouble++
			seenNumeric++
		default:
			panic(fmt.Sprintf("literal: Compare of kind %s", l.kind))
		}
	}

	target := lits[0].kind
	if lits[0].kind != lits[1].kind {
		if flags&CompareXQuery != 0 {
			if seenNumeric != 2 {
				return int(lits[0].kind) - int(lits[1].kind), nil
			}
			target = KindDouble
		} else {
			target = KindInteger
			if seenString > 0 {
				target = KindString
			}
			if (seenInt > 0 && seenDouble > 0) || (seenInt > 0 && seenString > 0) {
				target = KindDouble
			}
			if seenBoolean && seenString > 0 {
				target = KindString
			}
		}
		slog.Debug("comparison promotion",
			"left", lits[0].kind,
			"right", lits[1].kind,
			"target", target)
	}

	for i, l := range lits {
		if l.kind == target {
			continue
		}
		switch target {
		case KindDouble:
			d, err := AsFloating(l)
			if err != nil {
				return 1, nil
			}
			doubles[i] = d
		case KindInteger:
			v, err := AsInteger(l)
			if err != nil {
				return 1, nil
			}
			ints[i] = v
		case KindString:
			s, err := AsString(l, 0)
			if err != nil {
				return 1, nil
			}
			texts[i] = s
		default:
			return 0, newTypeError("cannot promote %s literal to %s", l.kind, target)
		}
	}

	switch target {
	case KindURI:
		return strings.Compare(string(lits[0].uri), string(lits[1].uri)), nil

	case KindString:
		var langs, datatypes [2]string
		for i, l := range lits {
			if l.kind == KindString {
				langs[i] = l.language
				datatypes[i] = string(l.datatype)
			}
		}

		if langs[0] != "" || langs[1] != "" {
			if !strings.EqualFold(langs[0], langs[1]) {
				return strings.Compare(strings.ToLower(langs[0]), strings.ToLower(langs[1])), nil
			}
		}

		if datatypes[0] != "" || datatypes[1] != "" {
			// typed and plain strings have no order between them
			if datatypes[0] == "" || datatypes[1] == "" {
				return 0, newTypeError("cannot order typed and plain strings")
			}
			if r := strings.Compare(datatypes[0], datatypes[1]); r != 0 {
				return r, nil
			}
		}
		return compareText(texts[0], texts[1], flags), nil

	case KindBlank, KindPattern, KindQName, KindDecimal, KindDateTime:
		return compareText(texts[0], texts[1], flags), nil

	case KindInteger, KindBoolean:
		return cmp.Compare(ints[0], ints[1]), nil

	case KindDouble, KindFloat:
		return signOf(doubles[0] - doubles[1]), nil

	default:
		panic(fmt.Sprintf("literal: Compare at kind %s", target))
	}
}

func compareText(a, b string, flags CompareFlags) int {
	if flags&CompareNoCase != 0 {
		fold := cases.Fold()
		return strings.Compare(fold.String(a), fold.String(b))
	}
	return strings.Compare(a, b)
}

// signOf maps a difference to -1, 0 or 1. NaN is treated as greater.
func signOf(d float64) int {
	if d == 0 {
		return 0
	}
	if d < 0 {
		return -1
	}
	return 1
}

// Equals reports whether l1 and l2 hold the same value without any type
// promotion. A boolean and a string are compared by lexical text. Two
// variable literals are equal when their bindings are.
func Equals(l1, l2 *Literal) bool {
	if l1 == nil || l2 == nil {
		return l1 == nil && l2 == nil
	}

	if l1.kind != l2.kind {
		if (l1.kind == KindString && l2.kind == KindBoolean) ||
			(l1.kind == KindBoolean && l2.kind == KindString) {
			return l1.lexical == l2.lexical
		}
		return false
	}

	switch l1.kind {
	case KindURI:
		return l1.uri == l2.uri

	case KindString:
		if l1.language != "" || l2.language != "" {
			if l1.language == "" || l2.language == "" {
				return false
			}
			if !strings.EqualFold(l1.language, l2.language) {
				return false
			}
		}
		if l1.datatype != l2.datatype {
			return false
		}
		return l1.lexical == l2.lexical

	case KindBlank, KindPattern, KindQName, KindDecimal, KindDateTime:
		return l1.lexical == l2.lexical

	case KindInteger, KindBoolean:
		return l1.integer == l2.integer

	case KindDouble, KindFloat:
		return l1.floating == l2.floating

	case KindVariable:
		return Equals(l1.variable.binding(), l2.variable.binding())

	default:
		panic(fmt.Sprintf("literal: Equals of kind %s", l1.kind))
	}
}
