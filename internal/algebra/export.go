package algebra

import (
	"fmt"

	"github.com/roach88/sparqlcore/internal/ir"
	"github.com/roach88/sparqlcore/internal/literal"
	"github.com/roach88/sparqlcore/internal/query"
)

// ToIR exports the tree rooted at n as a canonical IR object.
//
// Literals are exported by kind and text, so numeric values keep their
// lexical form. Expressions are exported by their rendering.
func ToIR(n *Node) ir.IRObject {
	obj := ir.NewIRObject(ir.O("op", ir.IRString(n.op.String())))

	switch {
	case n.IsEmpty():
		obj["empty"] = ir.IRBool(true)
	case n.op == OpBGP:
		obj["start"] = ir.IRInt(n.startColumn)
		obj["end"] = ir.IRInt(n.endColumn)
		triples := ir.IRArray{}
		for _, t := range n.TripleRange() {
			triples = append(triples, tripleToIR(t))
		}
		obj["triples"] = triples
	}

	var args ir.IRArray
	if n.node1 != nil {
		args = append(args, ToIR(n.node1))
		if n.node2 != nil {
			args = append(args, ToIR(n.node2))
		}
	}
	if len(args) > 0 {
		obj["args"] = args
	}

	if n.expr != nil {
		obj["expr"] = ir.IRString(query.ExpressionString(n.expr))
	}

	if n.op == OpSlice {
		obj["slice_start"] = ir.IRInt(n.start)
		obj["slice_length"] = ir.IRInt(n.length)
	}
	return obj
}

func tripleToIR(t *query.Triple) ir.IRObject {
	return ir.NewIRObject(
		ir.O("subject", literalToIR(t.Subject)),
		ir.O("predicate", literalToIR(t.Predicate)),
		ir.O("object", literalToIR(t.Object)),
	)
}

func literalToIR(l *literal.Literal) ir.IRValue {
	if l == nil {
		return ir.IRObject{"kind": ir.IRString("absent")}
	}
	obj := ir.NewIRObject(ir.O("kind", ir.IRString(l.Kind().String())))
	if v := literal.AsVariable(l); v != nil {
		obj["name"] = ir.IRString(v.Name)
		return obj
	}
	obj["value"] = ir.IRString(l.Text())
	if lang := l.Language(); lang != "" {
		obj["language"] = ir.IRString(lang)
	}
	if dt := l.Datatype(); dt != "" {
		obj["datatype"] = ir.IRString(dt)
	}
	if l.Kind() == literal.KindPattern && l.Flags() != "" {
		obj["flags"] = ir.IRString(l.Flags())
	}
	return obj
}

// Fingerprint returns a content hash of the tree, stable across runs and
// independent of the query's identity.
func Fingerprint(n *Node) (string, error) {
	h, err := ir.Hash(ir.DomainAlgebra, ToIR(n))
	if err != nil {
		return "", fmt.Errorf("fingerprint %s node: %w", n.op, err)
	}
	return h, nil
}
