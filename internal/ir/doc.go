// Package ir provides the canonical JSON value model used to export
// algebra trees to tooling.
//
// Values are a sealed set of types: IRString, IRInt, IRBool, IRArray and
// IRObject. There is no float and no null, so every exported tree has a
// single byte-exact canonical form (RFC 8785 key order, NFC strings) and
// a stable content hash.
//
// Numeric literal values are exported through their lexical text, never
// as JSON numbers.
package ir
