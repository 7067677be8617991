package query

import (
	"fmt"
	"io"
	"strings"
)

// PatternOp identifies the kind of a graph pattern.
type PatternOp int

const (
	PatternUnknown PatternOp = iota
	PatternBasic
	PatternOptional
	PatternUnion
	PatternGroup
	PatternGraph
)

var patternOpLabels = map[PatternOp]string{
	PatternUnknown:  "UNKNOWN",
	PatternBasic:    "Basic",
	PatternOptional: "Optional",
	PatternUnion:    "Union",
	PatternGroup:    "Group",
	PatternGraph:    "Graph",
}

// String returns the pattern operator label.
func (op PatternOp) String() string {
	if s, ok := patternOpLabels[op]; ok {
		return s
	}
	return patternOpLabels[PatternUnknown]
}

// ParsePatternOp maps a lower-case label to its operator.
func ParsePatternOp(s string) (PatternOp, bool) {
	for op, label := range patternOpLabels {
		if op != PatternUnknown && strings.EqualFold(label, s) {
			return op, true
		}
	}
	return PatternUnknown, false
}

// GraphPattern is one node of the parsed pattern tree.
//
// A Basic pattern addresses the inclusive column range
// [StartColumn, EndColumn] of the query's triple sequence and has no
// sub-patterns. Every other operator uses Patterns and leaves both
// columns at -1.
type GraphPattern struct {
	Op          PatternOp
	StartColumn int
	EndColumn   int
	Patterns    []*GraphPattern
}

// NewBasicPattern creates a basic pattern over [start, end].
func NewBasicPattern(start, end int) *GraphPattern {
	return &GraphPattern{Op: PatternBasic, StartColumn: start, EndColumn: end}
}

// NewPattern creates a pattern with sub-patterns.
func NewPattern(op PatternOp, patterns ...*GraphPattern) *GraphPattern {
	return &GraphPattern{Op: op, StartColumn: -1, EndColumn: -1, Patterns: patterns}
}

// Len returns the number of sub-patterns.
func (gp *GraphPattern) Len() int {
	return len(gp.Patterns)
}

// SubPattern returns sub-pattern i, or nil when out of range.
func (gp *GraphPattern) SubPattern(i int) *GraphPattern {
	if i < 0 || i >= len(gp.Patterns) {
		return nil
	}
	return gp.Patterns[i]
}

// Write renders the pattern tree in a compact debug form such as
// Group(Basic[0..1], Union(Basic[2..2], Basic[3..3])).
func (gp *GraphPattern) Write(w io.Writer) error {
	_, err := io.WriteString(w, gp.String())
	return err
}

// String returns the debug form of the pattern tree.
func (gp *GraphPattern) String() string {
	if gp == nil {
		return "null"
	}
	if gp.Op == PatternBasic {
		return fmt.Sprintf("Basic[%d..%d]", gp.StartColumn, gp.EndColumn)
	}
	parts := make([]string, len(gp.Patterns))
	for i, sub := range gp.Patterns {
		parts[i] = sub.String()
	}
	return fmt.Sprintf("%s(%s)", gp.Op, strings.Join(parts, ", "))
}
