package algebra

import "fmt"

// ValidationResult lists structural problems found in an algebra tree.
type ValidationResult struct {
	// Valid is true when no warnings were produced.
	Valid bool

	// Warnings describes each problem with the path of the offending node.
	Warnings []string
}

// Validate checks a tree against the structural rules the constructors
// enforce, for trees that were assembled or mutated elsewhere:
//
//  1. Binary operators (Join, Diff, Leftjoin, Union) have both children
//  2. Every operator except BGP and an expression-only Filter has node1
//  3. Leftjoin and Filter carry an expression
//  4. A BGP range lies inside its borrowed triple sequence
//  5. Every node belongs to the same query
//
// Validate has no side effects.
func Validate(n *Node) ValidationResult {
	v := &validator{warnings: []string{}}
	if n == nil {
		v.addWarning("(root): nil node")
	} else {
		v.validateNode(n, n.op.String(), n)
	}
	return ValidationResult{
		Valid:    len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateNode(n *Node, path string, root *Node) {
	if n.q != root.q {
		v.addWarning("%s: node belongs to a different query", path)
	}

	switch n.op {
	case OpBGP:
		v.validateBGP(n, path)
	case OpFilter:
		if n.expr == nil {
			v.addWarning("%s: Filter without expression", path)
		}
	case OpJoin, OpDiff, OpUnion, OpLeftJoin:
		if n.node1 == nil {
			v.addWarning("%s: %s missing node1", path, n.op)
		}
		if n.node2 == nil {
			v.addWarning("%s: %s missing node2", path, n.op)
		}
		if n.op == OpLeftJoin && n.expr == nil {
			v.addWarning("%s: Leftjoin without expression", path)
		}
	case OpToList, OpOrderBy, OpProject, OpDistinct, OpReduced, OpSlice:
		if n.node1 == nil {
			v.addWarning("%s: %s missing node1", path, n.op)
		}
	default:
		v.addWarning("%s: unknown operator %d", path, int(n.op))
	}

	if n.node1 != nil {
		v.validateNode(n.node1, path+"/"+n.node1.op.String(), root)
	}
	if n.node2 != nil {
		v.validateNode(n.node2, path+"/"+n.node2.op.String(), root)
	}
}

func (v *validator) validateBGP(n *Node, path string) {
	if n.node1 != nil || n.node2 != nil {
		v.addWarning("%s: BGP with child nodes", path)
	}
	if n.triples == nil {
		if n.startColumn != -1 || n.endColumn != -1 {
			v.addWarning("%s: empty BGP with range [%d..%d]", path, n.startColumn, n.endColumn)
		}
		return
	}
	if n.endColumn < n.startColumn {
		v.addWarning("%s: inverted range [%d..%d]", path, n.startColumn, n.endColumn)
		return
	}
	if n.startColumn < 0 || n.endColumn >= n.triples.Len() {
		v.addWarning("%s: range [%d..%d] outside %d triples", path, n.startColumn, n.endColumn, n.triples.Len())
	}
}
