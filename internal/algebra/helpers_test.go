package algebra

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/sparqlcore/internal/literal"
	"github.com/roach88/sparqlcore/internal/query"
)

// newTestQuery builds a query with three triples:
//
//	0: ?s <http://ex/p> ?o
//	1: ?s <http://ex/q> "x"
//	2: ?s <http://ex/r> 7
func newTestQuery(t *testing.T) *query.Query {
	t.Helper()

	q := query.New()
	s := q.Variable("s")
	o := q.Variable("o")

	q.AddTriple(query.NewTriple(
		literal.NewVariableLiteral(s),
		literal.NewURI("http://ex/p"),
		literal.NewVariableLiteral(o),
	))

	x, err := literal.NewString("x", "", "", "")
	require.NoError(t, err)
	q.AddTriple(query.NewTriple(
		literal.NewVariableLiteral(s),
		literal.NewURI("http://ex/q"),
		x,
	))

	q.AddTriple(query.NewTriple(
		literal.NewVariableLiteral(s),
		literal.NewURI("http://ex/r"),
		literal.NewInteger(7),
	))
	return q
}

// gtExpr builds gt(?o, 1).
func gtExpr(q *query.Query) query.Expression {
	return query.NewOpExpr("gt",
		query.NewLiteralExpr(literal.NewVariableLiteral(q.Variable("o"))),
		query.NewLiteralExpr(literal.NewInteger(1)),
	)
}

func mustBGP(t *testing.T, q *query.Query, start, end int) *Node {
	t.Helper()
	n, err := NewTriplesNode(q, q.Triples(), start, end)
	require.NoError(t, err)
	return n
}
