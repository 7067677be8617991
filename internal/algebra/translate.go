package algebra

import (
	"log/slog"

	"github.com/roach88/sparqlcore/internal/query"
)

// FromQuery translates the root graph pattern of q. A query without a
// root pattern yields nil with no error.
func FromQuery(q *query.Query) (*Node, error) {
	if q == nil {
		return nil, ErrNoQuery
	}
	gp := q.RootPattern()
	if gp == nil {
		return nil, nil
	}
	return FromGraphPattern(q, gp)
}

// FromGraphPattern translates gp into an algebra tree.
//
// Basic patterns become BGP nodes over the query's triple sequence. Union
// patterns fold left into binary Union nodes in sub-pattern order. Group,
// Optional, Graph and unknown patterns are not lowered and yield nil with
// no error.
//
// A Union branch that fails, or that is not lowered, fails the whole
// translation: the partial tree is freed and a TranslateError returned.
func FromGraphPattern(q *query.Query, gp *query.GraphPattern) (*Node, error) {
	if q == nil {
		return nil, ErrNoQuery
	}
	if gp == nil {
		return nil, nil
	}

	switch gp.Op {
	case query.PatternBasic:
		return NewTriplesNode(q, q.Triples(), gp.StartColumn, gp.EndColumn)

	case query.PatternUnion:
		return unionFromPatterns(q, gp)

	default:
		slog.Debug("graph pattern not lowered",
			"query_id", q.ID(),
			"op", gp.Op,
			"patterns", gp.Len())
		return nil, nil
	}
}

func unionFromPatterns(q *query.Query, gp *query.GraphPattern) (*Node, error) {
	var node *Node

	for i := 0; ; i++ {
		sgp := gp.SubPattern(i)
		if sgp == nil {
			break
		}

		branch, err := FromGraphPattern(q, sgp)
		if err == nil && branch == nil {
			err = ErrUnlowered
		}
		if err != nil {
			node.Free()
			slog.Debug("union branch failed",
				"query_id", q.ID(),
				"branch", i,
				"error", err)
			return nil, &TranslateError{Pattern: gp, Index: i, Err: err}
		}

		if node == nil {
			node = branch
			continue
		}

		joined, err := New2OpNode(q, OpUnion, node, branch)
		if err != nil {
			node.Free()
			branch.Free()
			return nil, &TranslateError{Pattern: gp, Index: i, Err: err}
		}
		node = joined
	}

	return node, nil
}
