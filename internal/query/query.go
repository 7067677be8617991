package query

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/sparqlcore/internal/literal"
)

// ErrUnknownPrefix is returned when a prefixed name uses an undeclared
// prefix.
var ErrUnknownPrefix = errors.New("unknown prefix")

// ErrNotPrefixedName is returned when a name has no prefix separator.
var ErrNotPrefixedName = errors.New("not a prefixed name")

// Query owns the parsed structures of one query: its triple sequence,
// root graph pattern, variables and namespace declarations.
type Query struct {
	id        uuid.UUID
	triples   *TripleSequence
	root      *GraphPattern
	variables map[string]*literal.Variable
	order     []string
	prefixes  map[string]literal.URI
}

// New creates an empty query with a fresh identity.
func New() *Query {
	return &Query{
		id:        uuid.New(),
		triples:   NewTripleSequence(),
		variables: make(map[string]*literal.Variable),
		prefixes:  make(map[string]literal.URI),
	}
}

// ID returns the query's identity, used to correlate tooling output.
func (q *Query) ID() uuid.UUID { return q.id }

// Triples returns the query's triple sequence. Algebra nodes borrow it.
func (q *Query) Triples() *TripleSequence { return q.triples }

// AddTriple appends t to the sequence and returns its column.
func (q *Query) AddTriple(t *Triple) int { return q.triples.Append(t) }

// SetRootPattern installs the root graph pattern.
func (q *Query) SetRootPattern(gp *GraphPattern) { q.root = gp }

// RootPattern returns the root graph pattern, or nil.
func (q *Query) RootPattern() *GraphPattern { return q.root }

// Variable returns the named variable, declaring it on first use.
func (q *Query) Variable(name string) *literal.Variable {
	if v, ok := q.variables[name]; ok {
		return v
	}
	v := literal.NewVariable(name)
	q.variables[name] = v
	q.order = append(q.order, name)
	return v
}

// LookupVariable returns a declared variable.
func (q *Query) LookupVariable(name string) (*literal.Variable, bool) {
	v, ok := q.variables[name]
	return v, ok
}

// Variables returns the declared variables in declaration order.
func (q *Query) Variables() []*literal.Variable {
	out := make([]*literal.Variable, len(q.order))
	for i, name := range q.order {
		out[i] = q.variables[name]
	}
	return out
}

// DeclarePrefix binds prefix to a namespace URI, replacing any earlier
// declaration. The empty prefix is the default namespace.
func (q *Query) DeclarePrefix(prefix string, ns literal.URI) {
	q.prefixes[prefix] = ns
}

// Prefixes returns the declared prefixes in sorted order.
func (q *Query) Prefixes() []string {
	out := make([]string, 0, len(q.prefixes))
	for p := range q.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ResolveQName expands prefix:local against the declared namespaces.
func (q *Query) ResolveQName(name string) (literal.URI, error) {
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotPrefixedName, name)
	}
	ns, ok := q.prefixes[prefix]
	if !ok {
		return "", fmt.Errorf("%w %q in %s", ErrUnknownPrefix, prefix, name)
	}
	return ns + literal.URI(local), nil
}

// ExpandQNames resolves every prefixed name left in the triple sequence.
// It stops at the first failure.
func (q *Query) ExpandQNames() error {
	for i := 0; i < q.triples.Len(); i++ {
		for _, l := range q.triples.At(i).Literals() {
			if !literal.HasQName(l) {
				continue
			}
			if err := literal.ExpandQName(l, q); err != nil {
				return fmt.Errorf("triple %d: %w", i, err)
			}
		}
	}
	slog.Debug("expanded query qnames", "query_id", q.id, "triples", q.triples.Len())
	return nil
}

// Free releases the triple sequence. Algebra trees built from q must be
// freed first.
func (q *Query) Free() {
	q.triples.Free()
	q.root = nil
}
