package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/sparqlcore/internal/literal"
	"github.com/roach88/sparqlcore/internal/query"
)

// termKeys are the selectors that name a term's kind. A term struct must
// carry exactly one of them.
var termKeys = []string{
	"var", "uri", "qname", "blank", "string",
	"integer", "double", "boolean", "decimal", "pattern",
}

// CompileTerm builds a literal from a term struct such as
//
//	{var: "s"}
//	{qname: "foaf:name"}
//	{string: "chat", lang: "fr"}
//	{string: "42", datatype_qname: "xsd:integer"}
//	{integer: 7}
//
// Variables are registered in q. Prefixed names are left unexpanded;
// CompileQuery resolves them once all prefixes are declared. field names
// the term in errors.
func CompileTerm(q *query.Query, v cue.Value, field string) (*literal.Literal, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: field, Message: "term is required", Pos: v.Pos()}
	}

	key, err := termKey(v, field)
	if err != nil {
		return nil, err
	}
	val := v.LookupPath(cue.ParsePath(key))

	switch key {
	case "var":
		name, err := val.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		name = strings.TrimPrefix(name, "?")
		if name == "" {
			return nil, &CompileError{Field: field + ".var", Message: "variable name is empty", Pos: val.Pos()}
		}
		return literal.NewVariableLiteral(q.Variable(name)), nil

	case "uri":
		s, err := val.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.NewURI(literal.URI(s)), nil

	case "qname":
		s, err := val.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if !strings.Contains(s, ":") {
			return nil, &CompileError{Field: field + ".qname", Message: fmt.Sprintf("%q is not a prefixed name", s), Pos: val.Pos()}
		}
		return literal.NewSimple(literal.KindQName, s), nil

	case "blank":
		s, err := val.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.NewSimple(literal.KindBlank, s), nil

	case "string":
		return compileStringTerm(v, val, field)

	case "integer":
		i, err := val.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.NewInteger(i), nil

	case "double":
		d, err := val.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.NewDouble(d), nil

	case "boolean":
		b, err := val.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.NewBoolean(b), nil

	case "decimal":
		s, err := val.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		dt, _ := literal.LookupDatatype(literal.XSDDecimal)
		if !dt.Check(s) {
			return nil, &CompileError{Field: field + ".decimal", Message: fmt.Sprintf("%q is not a decimal", s), Pos: val.Pos()}
		}
		return literal.NewDecimal(s), nil

	case "pattern":
		s, err := val.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		flags, err := optionalString(v, "flags")
		if err != nil {
			return nil, err
		}
		return literal.NewPattern(s, flags), nil
	}

	// termKey only returns known keys
	panic("compiler: unhandled term key " + key)
}

func compileStringTerm(v, val cue.Value, field string) (*literal.Literal, error) {
	text, err := val.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	lang, err := optionalString(v, "lang")
	if err != nil {
		return nil, err
	}
	datatype, err := optionalString(v, "datatype")
	if err != nil {
		return nil, err
	}
	datatypeQName, err := optionalString(v, "datatype_qname")
	if err != nil {
		return nil, err
	}
	if datatype != "" && datatypeQName != "" {
		return nil, &CompileError{
			Field:   field,
			Message: "datatype and datatype_qname are mutually exclusive",
			Pos:     v.Pos(),
		}
	}

	l, err := literal.NewString(text, lang, literal.URI(datatype), datatypeQName)
	if err != nil {
		return nil, &CompileError{Field: field + ".string", Message: err.Error(), Pos: val.Pos()}
	}
	return l, nil
}

// termKey returns the single kind selector present in v.
func termKey(v cue.Value, field string) (string, error) {
	var found []string
	for _, key := range termKeys {
		if v.LookupPath(cue.ParsePath(key)).Exists() {
			found = append(found, key)
		}
	}
	switch len(found) {
	case 0:
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("term must have one of: %s", strings.Join(termKeys, ", ")),
			Pos:     v.Pos(),
		}
	case 1:
		return found[0], nil
	default:
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("term has several kinds: %s", strings.Join(found, ", ")),
			Pos:     v.Pos(),
		}
	}
}

func optionalString(v cue.Value, key string) (string, error) {
	val := v.LookupPath(cue.ParsePath(key))
	if !val.Exists() {
		return "", nil
	}
	s, err := val.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}
