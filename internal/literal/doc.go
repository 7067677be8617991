// Package literal implements the typed value model shared by every algebra
// and expression node.
//
// A Literal is a tagged value (URI, blank node id, plain or typed string,
// boolean, integer, double, float, decimal, date-time, regex pattern,
// unresolved qname or a reference to a Variable's current binding).
// Literals are reference counted: Copy shares ownership and Free releases
// it, with kind-specific resources dropped exactly once when the last
// owner lets go.
//
// DATATYPE PROMOTION:
//
// A string constructed with a well-known XSD datatype is promoted in place
// to its native kind when the lexical form validates:
//
//	xsd:boolean  -> KindBoolean   (true|TRUE|1|false|FALSE|0)
//	xsd:integer  -> KindInteger   (base 10, fits int64)
//	xsd:double   -> KindDouble
//	xsd:float    -> KindFloat
//	xsd:decimal  -> KindDecimal   (text kept)
//	xsd:dateTime -> KindDateTime  (text kept)
//
// A lexical form that does not validate is a construction error, never a
// silent fallback to a plain string.
//
// COMPARISON MODES:
//
// Compare orders two literals strcmp-style under one of two promotion
// regimes. The default (legacy) regime promotes mixed operands to string,
// integer or double. CompareXQuery applies the standards regime: numeric
// operands promote to double, any other mixed pair orders by kind rank.
// Equals never promotes.
//
// Variables are shared and owned by the query. A variable literal holds a
// plain pointer to its Variable and never frees it.
package literal
