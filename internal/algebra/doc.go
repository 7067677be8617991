// Package algebra builds the relational algebra tree a SPARQL evaluator
// runs, and translates parsed graph patterns into it.
//
// A Node is a tagged tree node. Its operator decides which fields are
// meaningful:
//
//	BGP       triples[start..end] borrowed from the query
//	Filter    expression, optionally over node1
//	Join, Diff, Union
//	          node1, node2
//	Leftjoin  node1, node2, expression
//	ToList, OrderBy, Project, Distinct, Reduced
//	          node1
//	Slice     node1, start, length
//
// OWNERSHIP:
//
// A node owns its children and its expression and frees them when it is
// freed. A BGP node never owns its triple sequence: it borrows the one
// held by the query, which must outlive the tree. The empty BGP has no
// sequence at all and renders as Z.
//
// Constructors that fail return an error and take ownership of nothing.
//
// TRANSLATION:
//
// FromQuery lowers a query's root graph pattern. Basic patterns become
// BGP nodes and Union patterns fold left into nested binary Union nodes.
// Group, Optional and Graph patterns are left for a later pass and
// translate to nil.
package algebra
