package query

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sparqlcore/internal/literal"
)

func newTestQuery(t *testing.T) *Query {
	t.Helper()
	q := New()
	q.DeclarePrefix("ex", "http://example.org/")
	q.DeclarePrefix("xsd", literal.XSDNamespace)
	return q
}

func TestQueryIdentity(t *testing.T) {
	a, b := New(), New()

	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestQueryVariablesDeclaredOnce(t *testing.T) {
	q := New()

	x := q.Variable("x")
	y := q.Variable("y")
	again := q.Variable("x")

	assert.Same(t, x, again)
	assert.Equal(t, []*literal.Variable{x, y}, q.Variables())

	_, ok := q.LookupVariable("z")
	assert.False(t, ok)
}

func TestResolveQName(t *testing.T) {
	q := newTestQuery(t)

	u, err := q.ResolveQName("ex:book")
	require.NoError(t, err)
	assert.Equal(t, literal.URI("http://example.org/book"), u)

	_, err = q.ResolveQName("foaf:name")
	assert.ErrorIs(t, err, ErrUnknownPrefix)

	_, err = q.ResolveQName("plain")
	assert.ErrorIs(t, err, ErrNotPrefixedName)

	assert.Equal(t, []string{"ex", "xsd"}, q.Prefixes())
}

func TestExpandQNames(t *testing.T) {
	q := newTestQuery(t)

	obj, err := literal.NewString("5", "", "", "xsd:integer")
	require.NoError(t, err)
	q.AddTriple(NewTriple(
		literal.NewVariableLiteral(q.Variable("s")),
		literal.NewSimple(literal.KindQName, "ex:count"),
		obj,
	))

	require.NoError(t, q.ExpandQNames())

	tr := q.Triples().At(0)
	assert.Equal(t, literal.KindURI, tr.Predicate.Kind())
	assert.Equal(t, literal.KindInteger, tr.Object.Kind())
}

func TestExpandQNamesReportsTriple(t *testing.T) {
	q := newTestQuery(t)
	q.AddTriple(NewTriple(
		literal.NewURI("http://example.org/a"),
		literal.NewSimple(literal.KindQName, "nope:p"),
		literal.NewPlain("o"),
	))

	err := q.ExpandQNames()

	require.Error(t, err)
	assert.True(t, literal.IsQNameError(err))
	assert.Contains(t, err.Error(), "triple 0")
}

func TestTripleSequence(t *testing.T) {
	seq := NewTripleSequence()
	a := NewTriple(literal.NewURI("http://a/"), literal.NewURI("http://p/"), literal.NewPlain("x"))
	b := NewTriple(literal.NewURI("http://b/"), literal.NewURI("http://p/"), literal.NewInteger(2))

	assert.Equal(t, 0, seq.Append(a))
	assert.Equal(t, 1, seq.Append(b))
	assert.Equal(t, 2, seq.Len())
	assert.Same(t, b, seq.At(1))
	assert.Equal(t, []*Triple{a, b}, seq.Range(0, 1))
	assert.Nil(t, seq.Range(-1, -1))
	assert.Nil(t, seq.Range(1, 0))
	assert.Nil(t, seq.Range(0, 2))

	head := seq.Range(0, 0)
	assert.Equal(t, 1, cap(head))
	_ = append(head, NewTriple(literal.NewURI("http://c/"), literal.NewURI("http://p/"), literal.NewInteger(3)))
	assert.Same(t, b, seq.At(1))

	assert.Equal(t,
		`[triple(uri<http://a/>, uri<http://p/>, string("x")), triple(uri<http://b/>, uri<http://p/>, integer 2)]`,
		seq.String())

	obj := b.Object
	seq.Free()
	assert.True(t, obj.Released())
	assert.Equal(t, 0, seq.Len())
}

func TestTripleWrite(t *testing.T) {
	tr := NewTriple(literal.NewVariableLiteral(literal.NewVariable("s")), literal.NewURI("http://p/"), nil)

	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	assert.Equal(t, "triple(variable(s), uri<http://p/>, null)", buf.String())
	assert.Len(t, tr.Literals(), 2)
}

func TestGraphPattern(t *testing.T) {
	gp := NewPattern(PatternGroup,
		NewBasicPattern(0, 1),
		NewPattern(PatternUnion, NewBasicPattern(2, 2), NewBasicPattern(3, 3)),
	)

	assert.Equal(t, 2, gp.Len())
	assert.Equal(t, PatternUnion, gp.SubPattern(1).Op)
	assert.Nil(t, gp.SubPattern(2))
	assert.Nil(t, gp.SubPattern(-1))
	assert.Equal(t, "Group(Basic[0..1], Union(Basic[2..2], Basic[3..3]))", gp.String())
}

func TestParsePatternOp(t *testing.T) {
	for _, s := range []string{"basic", "Union", "OPTIONAL", "group", "graph"} {
		_, ok := ParsePatternOp(s)
		assert.True(t, ok, s)
	}
	op, ok := ParsePatternOp("unknown")
	assert.False(t, ok)
	assert.Equal(t, PatternUnknown, op)
}

func TestExpressions(t *testing.T) {
	x := literal.NewVariable("x")
	one := literal.NewInteger(1)
	e := NewOpExpr("gt", NewLiteralExpr(literal.NewVariableLiteral(x)), NewLiteralExpr(one))

	assert.Equal(t, "gt(variable(x), integer 1)", ExpressionString(e))

	e.Free()
	assert.True(t, one.Released())
	assert.Empty(t, e.Args)
}
