package literal

// Kind identifies which payload of a Literal is populated.
//
// The order is significant: under CompareXQuery two non-numeric literals
// of different kinds order by the difference of their Kind values.
type Kind int

const (
	KindUnknown Kind = iota
	KindBlank
	KindURI
	KindString
	KindBoolean
	KindInteger
	KindDouble
	KindFloat
	KindDecimal
	KindDateTime
	KindPattern
	KindQName
	KindVariable
)

var kindLabels = [...]string{
	KindUnknown:  "UNKNOWN",
	KindBlank:    "blank",
	KindURI:      "uri",
	KindString:   "string",
	KindBoolean:  "boolean",
	KindInteger:  "integer",
	KindDouble:   "double",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindDateTime: "datetime",
	KindPattern:  "pattern",
	KindQName:    "qname",
	KindVariable: "variable",
}

// String returns the debug label of the kind.
func (k Kind) String() string {
	if k < KindUnknown || int(k) >= len(kindLabels) {
		return kindLabels[KindUnknown]
	}
	return kindLabels[k]
}

// IsNumeric reports whether the kind takes part in numeric promotion.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInteger, KindDouble, KindFloat, KindDecimal:
		return true
	}
	return false
}

// isStringLike reports whether the kind compares by its lexical text.
func (k Kind) isStringLike() bool {
	switch k {
	case KindString, KindBlank, KindPattern, KindQName, KindDateTime:
		return true
	}
	return false
}
