package literal

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// URI is an absolute IRI in its string form.
type URI string

// String returns the URI text.
func (u URI) String() string { return string(u) }

// Static lexical forms shared by every boolean literal.
const (
	lexicalTrue  = "true"
	lexicalFalse = "false"
)

// Variable is a named query placeholder. Variables are owned by the query;
// a Literal pointing at one never frees it, and a Variable's binding is a
// plain reference that does not take ownership of the bound literal.
type Variable struct {
	Name  string
	Value *Literal
}

// NewVariable creates an unbound variable.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

// Bind sets the current binding. Passing nil unbinds the variable.
func (v *Variable) Bind(l *Literal) {
	v.Value = l
}

// IsBound reports whether the variable has a current binding.
func (v *Variable) IsBound() bool {
	return v != nil && v.Value != nil
}

func (v *Variable) binding() *Literal {
	if v == nil {
		return nil
	}
	return v.Value
}

// Literal is a reference-counted typed value.
//
// Exactly one native payload is meaningful, selected by kind: integer
// (integer, boolean), floating (double, float), uri (URI) or variable
// (variable). Every other kind is carried by its lexical text.
type Literal struct {
	kind Kind

	lexical  string
	language string
	datatype URI

	// flags holds regex modifiers for patterns, or an unresolved datatype
	// qname for strings awaiting namespace resolution.
	flags string

	integer  int64
	floating float64
	uri      URI
	variable *Variable

	usage    int
	released bool
}

// NewInteger creates an xsd:integer literal.
func NewInteger(value int64) *Literal {
	return &Literal{
		kind:     KindInteger,
		integer:  value,
		lexical:  strconv.FormatInt(value, 10),
		datatype: XSDInteger,
		usage:    1,
	}
}

// NewDouble creates an xsd:double literal.
func NewDouble(value float64) *Literal {
	return &Literal{
		kind:     KindDouble,
		floating: value,
		lexical:  formatFloating(value),
		datatype: XSDDouble,
		usage:    1,
	}
}

// NewURI creates a URI literal.
func NewURI(u URI) *Literal {
	return &Literal{kind: KindURI, uri: u, usage: 1}
}

// NewPattern creates a regex pattern literal with optional flags.
func NewPattern(pattern, flags string) *Literal {
	return &Literal{kind: KindPattern, lexical: pattern, flags: flags, usage: 1}
}

// NewDecimal creates an xsd:decimal literal. The text is kept verbatim.
func NewDecimal(text string) *Literal {
	return &Literal{kind: KindDecimal, lexical: text, datatype: XSDDecimal, usage: 1}
}

// NewSimple creates a blank node or qname literal from its text.
// Any other kind is a contract violation.
func NewSimple(kind Kind, text string) *Literal {
	if kind != KindBlank && kind != KindQName {
		panic(fmt.Sprintf("literal: NewSimple called with kind %s", kind))
	}
	return &Literal{kind: kind, lexical: text, usage: 1}
}

// NewBoolean creates an xsd:boolean literal.
func NewBoolean(value bool) *Literal {
	l := &Literal{kind: KindBoolean, datatype: XSDBoolean, usage: 1}
	l.setBoolean(value)
	return l
}

// NewVariableLiteral creates a literal referring to v. The variable is not
// owned by the literal.
func NewVariableLiteral(v *Variable) *Literal {
	return &Literal{kind: KindVariable, variable: v, usage: 1}
}

// NewString creates a string literal with an optional language tag,
// datatype URI or unresolved datatype qname (empty means absent).
//
// When both language and datatype are given the language is dropped. A
// datatype found in the XSD registry promotes the literal to its native
// kind; a lexical form that does not validate fails construction with a
// FORMAT error naming the datatype and the text.
func NewString(text, language string, datatype URI, datatypeQName string) (*Literal, error) {
	if datatype != "" && language != "" {
		language = ""
	}

	l := &Literal{
		kind:     KindString,
		lexical:  text,
		language: language,
		datatype: datatype,
		flags:    datatypeQName,
		usage:    1,
	}

	if err := l.promote(); err != nil {
		slog.Debug("string literal promotion failed",
			"datatype", datatype,
			"text", text,
			"error", err)
		l.Free()
		return nil, err
	}
	return l, nil
}

// NewPlain creates an untyped, untagged string literal.
func NewPlain(text string) *Literal {
	return &Literal{kind: KindString, lexical: text, usage: 1}
}

// Copy shares ownership of l and returns the same literal.
func (l *Literal) Copy() *Literal {
	if l.released {
		panic("literal: Copy of released literal")
	}
	l.usage++
	return l
}

// Free gives up one share of ownership. When the last share is released
// the kind-specific resources are dropped. A variable literal never frees
// its variable. Freeing a released literal is a contract violation.
func (l *Literal) Free() {
	if l == nil {
		return
	}
	if l.released || l.usage <= 0 {
		panic(fmt.Sprintf("literal: double free of %s literal", l.kind))
	}
	l.usage--
	if l.usage > 0 {
		return
	}

	switch l.kind {
	case KindURI:
		l.uri = ""
	case KindString, KindBlank, KindPattern, KindQName,
		KindDouble, KindInteger, KindFloat, KindDecimal, KindDateTime:
		l.lexical = ""
		l.language = ""
		l.datatype = ""
		l.flags = ""
	case KindBoolean:
		// the lexical form is one of the shared static strings
		l.datatype = ""
	case KindVariable:
		l.variable = nil
	default:
		panic(fmt.Sprintf("literal: free of unknown kind %d", int(l.kind)))
	}
	l.released = true
}

// Usage returns the number of owners currently sharing l.
func (l *Literal) Usage() int { return l.usage }

// Released reports whether the last owner has freed l.
func (l *Literal) Released() bool { return l.released }

// Kind returns the literal's kind.
func (l *Literal) Kind() Kind { return l.kind }

// Lexical returns the stored lexical text. URI and variable literals have
// none; use AsString for a rendered form.
func (l *Literal) Lexical() string { return l.lexical }

// Language returns the language tag of a string literal.
func (l *Literal) Language() string { return l.language }

// Flags returns the regex flags of a pattern or the pending datatype
// qname of a string.
func (l *Literal) Flags() string { return l.flags }

// Variable returns the referenced variable, or nil.
func (l *Literal) Variable() *Variable { return l.variable }

func (l *Literal) setBoolean(value bool) {
	if value {
		l.lexical = lexicalTrue
		l.integer = 1
	} else {
		l.lexical = lexicalFalse
		l.integer = 0
	}
}

// deref follows a variable literal to its current binding.
// The result is nil for an unbound variable.
func deref(l *Literal) *Literal {
	for l != nil && l.kind == KindVariable {
		l = l.variable.binding()
	}
	return l
}

// formatFloating renders a double in shortest decimal or exponent form.
// Non-finite values use the XSD spellings INF, -INF and NaN.
func formatFloating(d float64) string {
	switch {
	case math.IsInf(d, 1):
		return "INF"
	case math.IsInf(d, -1):
		return "-INF"
	case math.IsNaN(d):
		return "NaN"
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}
