package algebra

import (
	"io"
	"strconv"
	"strings"
)

// emptyGlyph is the rendering of the empty BGP.
const emptyGlyph = "Z"

// Write renders the tree rooted at n as indented, parenthesized text:
//
//	Filter(
//	       BGP(
//	           triple(...)
//	       ) ,
//	       gt(variable(x), integer 1)
//	)
//
// The format is for inspection and may change.
func (n *Node) Write(w io.Writer) error {
	tw := &treeWriter{w: w}
	tw.node(n, 0)
	return tw.err
}

// Print is Write with the error discarded.
func (n *Node) Print(w io.Writer) {
	_ = n.Write(w)
}

// String returns the rendering of the tree.
func (n *Node) String() string {
	var b strings.Builder
	_ = n.Write(&b)
	return b.String()
}

// treeWriter keeps the first write error and skips later writes.
type treeWriter struct {
	w   io.Writer
	err error
}

func (tw *treeWriter) str(s string) {
	if tw.err != nil {
		return
	}
	_, tw.err = io.WriteString(tw.w, s)
}

func (tw *treeWriter) indent(n int) {
	if n > 0 {
		tw.str(strings.Repeat(" ", n))
	}
}

func (tw *treeWriter) node(n *Node, indent int) {
	if n.IsEmpty() {
		tw.str(emptyGlyph)
		return
	}

	label := n.op.String()
	tw.str(label)
	tw.str("(\n")
	delta := len(label) + 1
	indent += delta
	tw.indent(indent)

	args := 0
	sep := func() {
		if args > 0 {
			tw.str(" ,\n")
			tw.indent(indent)
		}
		args++
	}

	if n.op == OpBGP {
		for _, t := range n.TripleRange() {
			sep()
			if tw.err == nil {
				tw.err = t.Write(tw.w)
			}
		}
	}

	if n.node1 != nil {
		sep()
		tw.node(n.node1, indent)
		if n.node2 != nil {
			sep()
			tw.node(n.node2, indent)
		}
	}

	if n.expr != nil {
		sep()
		if tw.err == nil {
			tw.err = n.expr.Write(tw.w)
		}
	}

	if n.op == OpSlice {
		sep()
		tw.str("slice start ")
		tw.str(strconv.FormatInt(n.start, 10))
		tw.str(" length ")
		tw.str(strconv.FormatInt(n.length, 10))
		tw.str("\n")
	}

	tw.str("\n")
	indent -= delta
	tw.indent(indent)
	tw.str(")")
}
