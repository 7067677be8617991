package algebra

// VisitFunc is applied to each node of a walk. Returning a non-nil error
// stops the walk.
type VisitFunc func(n *Node) error

// Visit walks the tree rooted at n depth-first, calling fn on each node
// before its children. The first non-nil error from fn ends the walk and
// is returned unchanged. Visiting a nil tree does nothing.
func Visit(n *Node, fn VisitFunc) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	if n.node1 != nil {
		if err := Visit(n.node1, fn); err != nil {
			return err
		}
	}
	if n.node2 != nil {
		if err := Visit(n.node2, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	count := 0
	_ = Visit(n, func(*Node) error {
		count++
		return nil
	})
	return count
}
