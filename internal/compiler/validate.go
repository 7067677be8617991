package compiler

import (
	"fmt"
	"regexp"

	"github.com/roach88/sparqlcore/internal/literal"
	"github.com/roach88/sparqlcore/internal/query"
)

// Validation error codes (E100-E199)
const (
	// Query errors (E100-E109)
	ErrNilQuery            = "E100" // no query to validate
	ErrMissingTerm         = "E101" // triple position is absent
	ErrUnresolvedQName     = "E102" // prefixed name left after compilation
	ErrInvalidVariableName = "E103" // variable name is not a SPARQL VARNAME

	// Graph pattern errors (E110-E119)
	ErrPatternRange         = "E110" // basic range outside the triple sequence
	ErrPatternInverted      = "E111" // basic range end before start
	ErrBasicWithChildren    = "E112" // basic pattern with sub-patterns
	ErrUnionWithoutBranches = "E113" // union with no sub-patterns
	ErrUnknownPatternOp     = "E114" // pattern op outside the known set
	ErrSharedPattern        = "E115" // pattern reached twice in the tree
)

// ValidationError represents a query validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled query for problems the algebra translator
// would otherwise hit late or silently: absent terms, leftover prefixed
// names, malformed variable names and graph pattern trees that do not
// describe the triple sequence.
// Returns all errors found (does not fail-fast).
func Validate(q *query.Query) []ValidationError {
	if q == nil {
		return []ValidationError{{
			Field:   "query",
			Message: "no query",
			Code:    ErrNilQuery,
		}}
	}

	var errs []ValidationError
	errs = append(errs, validateTriples(q)...)
	errs = append(errs, validateVariables(q)...)

	if root := q.RootPattern(); root != nil {
		pv := &patternValidator{
			columns: q.Triples().Len(),
			seen:    make(map[*query.GraphPattern]string),
		}
		pv.validate(root, "pattern")
		errs = append(errs, pv.errs...)
	}
	return errs
}

func validateTriples(q *query.Query) []ValidationError {
	var errs []ValidationError
	triples := q.Triples()
	for i := 0; i < triples.Len(); i++ {
		t := triples.At(i)
		positions := []struct {
			name string
			l    *literal.Literal
		}{
			{"subject", t.Subject},
			{"predicate", t.Predicate},
			{"object", t.Object},
		}
		for _, pos := range positions {
			field := fmt.Sprintf("triples[%d].%s", i, pos.name)
			// E101: every position carries a term
			if pos.l == nil {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: "term is absent",
					Code:    ErrMissingTerm,
				})
				continue
			}
			// E102: prefixed names are expanded at compile time
			if literal.HasQName(pos.l) {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("unresolved prefixed name in %s", pos.l),
					Code:    ErrUnresolvedQName,
				})
			}
		}
	}
	return errs
}

// varNamePattern approximates the SPARQL VARNAME production for ASCII
// names plus any non-ASCII letter.
var varNamePattern = regexp.MustCompile(`^[\p{L}_0-9][\p{L}_0-9\x{00B7}]*$`)

func validateVariables(q *query.Query) []ValidationError {
	var errs []ValidationError
	for _, v := range q.Variables() {
		// E103: variable names follow VARNAME
		if !varNamePattern.MatchString(v.Name) {
			errs = append(errs, ValidationError{
				Field:   "variables." + v.Name,
				Message: fmt.Sprintf("invalid variable name %q", v.Name),
				Code:    ErrInvalidVariableName,
			})
		}
	}
	return errs
}

// patternValidator walks a graph pattern tree. seen maps each visited
// pattern to its first path so that sharing and cycles are reported once.
type patternValidator struct {
	columns int
	seen    map[*query.GraphPattern]string
	errs    []ValidationError
}

func (pv *patternValidator) add(field, code, format string, args ...any) {
	pv.errs = append(pv.errs, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	})
}

func (pv *patternValidator) validate(gp *query.GraphPattern, path string) {
	// E115: a pattern may appear only once in the tree
	if first, ok := pv.seen[gp]; ok {
		pv.add(path, ErrSharedPattern, "pattern already reached at %s", first)
		return
	}
	pv.seen[gp] = path

	switch gp.Op {
	case query.PatternBasic:
		pv.validateBasic(gp, path)
	case query.PatternUnion:
		// E113: union needs at least one branch
		if gp.Len() == 0 {
			pv.add(path, ErrUnionWithoutBranches, "union has no sub-patterns")
		}
	case query.PatternGroup, query.PatternOptional, query.PatternGraph:
	default:
		// E114: known ops only
		pv.add(path+".op", ErrUnknownPatternOp, "unknown pattern op %s", gp.Op)
	}

	for i := 0; i < gp.Len(); i++ {
		pv.validate(gp.SubPattern(i), fmt.Sprintf("%s.patterns[%d]", path, i))
	}
}

func (pv *patternValidator) validateBasic(gp *query.GraphPattern, path string) {
	// E112: basic patterns are leaves
	if gp.Len() > 0 {
		pv.add(path, ErrBasicWithChildren, "basic pattern has %d sub-patterns", gp.Len())
	}

	// E111: start <= end
	if gp.EndColumn < gp.StartColumn {
		pv.add(path, ErrPatternInverted, "range [%d..%d] is inverted", gp.StartColumn, gp.EndColumn)
		return
	}

	// E110: range inside the triple sequence
	if gp.StartColumn < 0 || gp.EndColumn >= pv.columns {
		pv.add(path, ErrPatternRange, "range [%d..%d] outside %d triples",
			gp.StartColumn, gp.EndColumn, pv.columns)
	}
}
