package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sparqlcore/internal/ir"
	"github.com/roach88/sparqlcore/internal/query"
)

func TestToIR(t *testing.T) {
	q := newTestQuery(t)
	n, err := NewFilterNode(q, mustBGP(t, q, 1, 1), gtExpr(q))
	require.NoError(t, err)

	obj := ToIR(n)
	assert.Equal(t, ir.IRString("Filter"), obj["op"])
	assert.Equal(t, ir.IRString("gt(variable(o), integer 1)"), obj["expr"])

	args, ok := obj["args"].(ir.IRArray)
	require.True(t, ok)
	require.Len(t, args, 1)

	bgp := args[0].(ir.IRObject)
	assert.Equal(t, ir.IRInt(1), bgp["start"])
	assert.Equal(t, ir.IRInt(1), bgp["end"])

	triples := bgp["triples"].(ir.IRArray)
	require.Len(t, triples, 1)
	triple := triples[0].(ir.IRObject)
	assert.Equal(t, ir.IRObject{"kind": ir.IRString("variable"), "name": ir.IRString("s")}, triple["subject"])
	assert.Equal(t, ir.IRObject{"kind": ir.IRString("uri"), "value": ir.IRString("http://ex/q")}, triple["predicate"])
	assert.Equal(t, ir.IRObject{"kind": ir.IRString("string"), "value": ir.IRString("x")}, triple["object"])
}

func TestToIREmptyAndSlice(t *testing.T) {
	q := newTestQuery(t)
	empty, err := NewEmptyNode(q)
	require.NoError(t, err)
	s, err := NewSliceNode(q, empty, 3, 4)
	require.NoError(t, err)

	obj := ToIR(s)
	assert.Equal(t, ir.IRInt(3), obj["slice_start"])
	assert.Equal(t, ir.IRInt(4), obj["slice_length"])
	inner := obj["args"].(ir.IRArray)[0].(ir.IRObject)
	assert.Equal(t, ir.IRBool(true), inner["empty"])
}

func TestFingerprintIgnoresQueryIdentity(t *testing.T) {
	build := func() *Node {
		q := newTestQuery(t)
		q.SetRootPattern(query.NewPattern(query.PatternUnion,
			query.NewBasicPattern(0, 1),
			query.NewBasicPattern(2, 2),
		))
		n, err := FromQuery(q)
		require.NoError(t, err)
		return n
	}

	a, b := build(), build()
	require.NotEqual(t, a.Query().ID(), b.Query().ID())

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 64)

	q := newTestQuery(t)
	other, err := FromGraphPattern(q, query.NewBasicPattern(0, 2))
	require.NoError(t, err)
	fo, err := Fingerprint(other)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fo)
}
