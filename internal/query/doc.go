// Package query holds the parsed-query structures the algebra layer
// consumes: the ordered triple sequence, the graph pattern tree, filter
// expressions, and the variable and namespace registries.
//
// A Query owns everything it holds. Algebra trees built from a query
// borrow its TripleSequence by reference and index range, so the query
// must outlive every tree derived from it.
//
// GRAPH PATTERNS:
//
// A GraphPattern is a tagged tree node. Basic patterns cover an inclusive
// column range of the query's triple sequence; every other operator holds
// sub-patterns:
//
//	Group(
//	  Basic[0..1],
//	  Union(Basic[2..2], Basic[3..3]),
//	)
//
// No query text is parsed here. Trees are built directly or by the CUE
// fixture compiler.
package query
