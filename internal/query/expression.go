package query

import (
	"io"
	"strings"

	"github.com/roach88/sparqlcore/internal/literal"
)

// Expression is a filter or join condition attached to an algebra node.
//
// This is a sealed interface. The algebra layer only renders and frees
// expressions; evaluation belongs to the evaluator.
type Expression interface {
	expressionNode()

	// Write renders the expression in its debug form.
	Write(w io.Writer) error

	// Free releases the literals the expression owns.
	Free()
}

// LiteralExpr is a leaf expression holding one share of a literal.
type LiteralExpr struct {
	Value *literal.Literal
}

func (*LiteralExpr) expressionNode() {}

// NewLiteralExpr takes ownership of l.
func NewLiteralExpr(l *literal.Literal) *LiteralExpr {
	return &LiteralExpr{Value: l}
}

// Write renders the literal.
func (e *LiteralExpr) Write(w io.Writer) error {
	_, err := io.WriteString(w, e.Value.String())
	return err
}

// Free releases the literal.
func (e *LiteralExpr) Free() {
	e.Value.Free()
	e.Value = nil
}

// OpExpr applies a named operator to argument expressions, for example
// gt(variable(x), integer 1).
type OpExpr struct {
	Op   string
	Args []Expression
}

func (*OpExpr) expressionNode() {}

// NewOpExpr takes ownership of args.
func NewOpExpr(op string, args ...Expression) *OpExpr {
	return &OpExpr{Op: op, Args: args}
}

// Write renders op(arg, ...).
func (e *OpExpr) Write(w io.Writer) error {
	if _, err := io.WriteString(w, e.Op+"("); err != nil {
		return err
	}
	for i, arg := range e.Args {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := arg.Write(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ")")
	return err
}

// Free releases every argument.
func (e *OpExpr) Free() {
	for _, arg := range e.Args {
		arg.Free()
	}
	e.Args = nil
}

// ExpressionString renders e to a string.
func ExpressionString(e Expression) string {
	var b strings.Builder
	_ = e.Write(&b)
	return b.String()
}
