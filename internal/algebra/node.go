package algebra

import (
	"fmt"

	"github.com/roach88/sparqlcore/internal/query"
)

// Node is one operator in an algebra tree.
type Node struct {
	op Operator
	q  *query.Query

	node1 *Node
	node2 *Node
	expr  query.Expression

	// BGP only. triples is borrowed from the query and never freed here.
	triples     *query.TripleSequence
	startColumn int
	endColumn   int

	// Slice only.
	start  int64
	length int64
}

func newNode(q *query.Query, op Operator) (*Node, error) {
	if q == nil {
		return nil, ErrNoQuery
	}
	return &Node{op: op, q: q, startColumn: -1, endColumn: -1}, nil
}

// NewEmptyNode creates the canonical empty BGP.
func NewEmptyNode(q *query.Query) (*Node, error) {
	return newNode(q, OpBGP)
}

// NewTriplesNode creates a BGP over the inclusive column range
// [start, end] of triples. The sequence is borrowed. A nil sequence
// yields the empty BGP.
func NewTriplesNode(q *query.Query, triples *query.TripleSequence, start, end int) (*Node, error) {
	n, err := newNode(q, OpBGP)
	if err != nil {
		return nil, err
	}
	if triples == nil {
		return n, nil
	}
	n.triples = triples
	n.startColumn = start
	n.endColumn = end
	return n, nil
}

// NewExprNode creates a Filter holding only an expression. The node takes
// ownership of expr.
func NewExprNode(q *query.Query, expr query.Expression) (*Node, error) {
	if expr == nil {
		return nil, ErrNoExpression
	}
	n, err := newNode(q, OpFilter)
	if err != nil {
		return nil, err
	}
	n.expr = expr
	return n, nil
}

// NewFilterNode creates a Filter of expr over node. The node takes
// ownership of both.
func NewFilterNode(q *query.Query, node *Node, expr query.Expression) (*Node, error) {
	if node == nil {
		return nil, ErrNoNode
	}
	n, err := NewExprNode(q, expr)
	if err != nil {
		return nil, err
	}
	n.node1 = node
	return n, nil
}

// New2OpNode creates a Join, Diff or Union over node1 and node2, or a
// ToList over node1 alone. The node takes ownership of its children.
func New2OpNode(q *query.Query, op Operator, node1, node2 *Node) (*Node, error) {
	if q == nil {
		return nil, ErrNoQuery
	}
	if op != OpToList && (!op.IsBinary() || op == OpLeftJoin) {
		return nil, fmt.Errorf("%w: %s", ErrBadOperator, op)
	}
	if node1 == nil {
		return nil, ErrNoNode
	}
	if op != OpToList && node2 == nil {
		return nil, ErrNoNode
	}
	n, err := newNode(q, op)
	if err != nil {
		return nil, err
	}
	n.node1 = node1
	n.node2 = node2
	return n, nil
}

// NewLeftJoinNode creates a Leftjoin of node1 and node2 under expr. All
// three are required and owned by the new node.
func NewLeftJoinNode(q *query.Query, node1, node2 *Node, expr query.Expression) (*Node, error) {
	if q == nil {
		return nil, ErrNoQuery
	}
	if node1 == nil || node2 == nil {
		return nil, ErrNoNode
	}
	if expr == nil {
		return nil, ErrNoExpression
	}
	n, err := newNode(q, OpLeftJoin)
	if err != nil {
		return nil, err
	}
	n.node1 = node1
	n.node2 = node2
	n.expr = expr
	return n, nil
}

// NewUnaryNode wraps node in a ToList, OrderBy, Project, Distinct or
// Reduced operator.
func NewUnaryNode(q *query.Query, op Operator, node *Node) (*Node, error) {
	if q == nil {
		return nil, ErrNoQuery
	}
	if !op.IsUnary() || op == OpSlice {
		return nil, fmt.Errorf("%w: %s", ErrBadOperator, op)
	}
	if node == nil {
		return nil, ErrNoNode
	}
	n, err := newNode(q, op)
	if err != nil {
		return nil, err
	}
	n.node1 = node
	return n, nil
}

// NewSliceNode limits node to length rows starting at start.
func NewSliceNode(q *query.Query, node *Node, start, length int64) (*Node, error) {
	if q == nil {
		return nil, ErrNoQuery
	}
	if node == nil {
		return nil, ErrNoNode
	}
	n, err := newNode(q, OpSlice)
	if err != nil {
		return nil, err
	}
	n.node1 = node
	n.start = start
	n.length = length
	return n, nil
}

// Free releases the subtree and any expression. The borrowed triple
// sequence is left alone.
func (n *Node) Free() {
	if n == nil {
		return
	}
	n.node1.Free()
	n.node2.Free()
	if n.expr != nil {
		n.expr.Free()
	}
	n.node1, n.node2, n.expr = nil, nil, nil
	n.triples = nil
}

// Operator returns the node's operator.
func (n *Node) Operator() Operator { return n.op }

// Query returns the query the node was built for.
func (n *Node) Query() *query.Query { return n.q }

// Node1 returns the first child, or nil.
func (n *Node) Node1() *Node { return n.node1 }

// Node2 returns the second child, or nil.
func (n *Node) Node2() *Node { return n.node2 }

// Expression returns the filter or join expression, or nil.
func (n *Node) Expression() query.Expression { return n.expr }

// Triples returns the borrowed triple sequence of a BGP, or nil.
func (n *Node) Triples() *query.TripleSequence { return n.triples }

// StartColumn returns the first column of a BGP, or -1.
func (n *Node) StartColumn() int { return n.startColumn }

// EndColumn returns the last column of a BGP, or -1.
func (n *Node) EndColumn() int { return n.endColumn }

// SliceStart returns the offset of a Slice.
func (n *Node) SliceStart() int64 { return n.start }

// SliceLength returns the row limit of a Slice.
func (n *Node) SliceLength() int64 { return n.length }

// IsEmpty reports whether n is the empty BGP.
func (n *Node) IsEmpty() bool {
	return n.op == OpBGP && n.triples == nil
}

// TripleRange returns the triples a BGP covers, in column order.
func (n *Node) TripleRange() []*query.Triple {
	if n.op != OpBGP || n.triples == nil {
		return nil
	}
	return n.triples.Range(n.startColumn, n.endColumn)
}
