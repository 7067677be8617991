package compiler

import (
	"fmt"
	"log/slog"

	"cuelang.org/go/cue"

	"github.com/roach88/sparqlcore/internal/literal"
	"github.com/roach88/sparqlcore/internal/query"
)

// CompileQuery builds a query from a CUE query fixture.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the query struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`query: people: { ... }`)
//	q, err := CompileQuery(v.LookupPath(cue.ParsePath("query.people")))
//
// A fixture declares prefixes, a triple list and an optional graph
// pattern tree over triple columns:
//
//	prefixes: foaf: "http://xmlns.com/foaf/0.1/"
//	triples: [
//		{subject: {var: "s"}, predicate: {qname: "foaf:name"}, object: {var: "name"}},
//	]
//	pattern: {op: "basic", start: 0, end: 0}
//
// Prefixed names are expanded after all triples are read. On error the
// partially built query is freed.
func CompileQuery(v cue.Value) (*query.Query, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	q := query.New()

	if err := compilePrefixes(q, v); err != nil {
		q.Free()
		return nil, err
	}
	if err := compileTriples(q, v); err != nil {
		q.Free()
		return nil, err
	}

	patternVal := v.LookupPath(cue.ParsePath("pattern"))
	if patternVal.Exists() {
		gp, err := compilePattern(patternVal, "pattern")
		if err != nil {
			q.Free()
			return nil, err
		}
		q.SetRootPattern(gp)
	}

	if err := q.ExpandQNames(); err != nil {
		q.Free()
		return nil, &CompileError{Field: "triples", Message: err.Error(), Pos: v.Pos()}
	}

	slog.Debug("compiled query fixture",
		"query_id", q.ID(),
		"triples", q.Triples().Len(),
		"variables", len(q.Variables()))
	return q, nil
}

func compilePrefixes(q *query.Query, v cue.Value) error {
	prefixesVal := v.LookupPath(cue.ParsePath("prefixes"))
	if !prefixesVal.Exists() {
		return nil // prefixes are optional
	}

	iter, err := prefixesVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		ns, err := iter.Value().String()
		if err != nil {
			return formatCUEError(err)
		}
		q.DeclarePrefix(iter.Label(), literal.URI(ns))
	}
	return nil
}

func compileTriples(q *query.Query, v cue.Value) error {
	triplesVal := v.LookupPath(cue.ParsePath("triples"))
	if !triplesVal.Exists() {
		return nil // a query may be pattern-free
	}

	iter, err := triplesVal.List()
	if err != nil {
		return formatCUEError(err)
	}

	for i := 0; iter.Next(); i++ {
		tv := iter.Value()
		field := fmt.Sprintf("triples[%d]", i)

		var terms [3]*literal.Literal
		for j, pos := range []string{"subject", "predicate", "object"} {
			l, err := CompileTerm(q, tv.LookupPath(cue.ParsePath(pos)), field+"."+pos)
			if err != nil {
				for _, done := range terms[:j] {
					done.Free()
				}
				return err
			}
			terms[j] = l
		}
		q.AddTriple(query.NewTriple(terms[0], terms[1], terms[2]))
	}
	return nil
}

func compilePattern(v cue.Value, field string) (*query.GraphPattern, error) {
	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return nil, &CompileError{Field: field + ".op", Message: "pattern op is required", Pos: v.Pos()}
	}
	opName, err := opVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	op, ok := query.ParsePatternOp(opName)
	if !ok {
		return nil, &CompileError{
			Field:   field + ".op",
			Message: fmt.Sprintf("unknown pattern op %q", opName),
			Pos:     opVal.Pos(),
		}
	}

	if op == query.PatternBasic {
		start, err := requiredInt(v, "start", field)
		if err != nil {
			return nil, err
		}
		end, err := requiredInt(v, "end", field)
		if err != nil {
			return nil, err
		}
		return query.NewBasicPattern(start, end), nil
	}

	var subs []*query.GraphPattern
	subsVal := v.LookupPath(cue.ParsePath("patterns"))
	if subsVal.Exists() {
		iter, err := subsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for i := 0; iter.Next(); i++ {
			sub, err := compilePattern(iter.Value(), fmt.Sprintf("%s.patterns[%d]", field, i))
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
	}
	return query.NewPattern(op, subs...), nil
}

func requiredInt(v cue.Value, key, field string) (int, error) {
	val := v.LookupPath(cue.ParsePath(key))
	if !val.Exists() {
		return 0, &CompileError{
			Field:   field + "." + key,
			Message: key + " is required for basic patterns",
			Pos:     v.Pos(),
		}
	}
	i, err := val.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(i), nil
}
