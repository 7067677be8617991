package algebra

// Operator identifies the kind of an algebra node.
type Operator int

const (
	OpUnknown Operator = iota
	OpBGP
	OpFilter
	OpJoin
	OpDiff
	OpLeftJoin
	OpUnion
	OpToList
	OpOrderBy
	OpProject
	OpDistinct
	OpReduced
	OpSlice
)

var operatorLabels = [...]string{
	OpUnknown:  "UNKNOWN",
	OpBGP:      "BGP",
	OpFilter:   "Filter",
	OpJoin:     "Join",
	OpDiff:     "Diff",
	OpLeftJoin: "Leftjoin",
	OpUnion:    "Union",
	OpToList:   "ToList",
	OpOrderBy:  "OrderBy",
	OpProject:  "Project",
	OpDistinct: "Distinct",
	OpReduced:  "Reduced",
	OpSlice:    "Slice",
}

// String returns the operator label. Out of range values are UNKNOWN.
func (op Operator) String() string {
	if op <= OpUnknown || int(op) >= len(operatorLabels) {
		return operatorLabels[OpUnknown]
	}
	return operatorLabels[op]
}

// ParseOperator maps a label back to its operator.
func ParseOperator(s string) (Operator, bool) {
	for i, label := range operatorLabels {
		if Operator(i) != OpUnknown && label == s {
			return Operator(i), true
		}
	}
	return OpUnknown, false
}

// IsBinary reports whether the operator requires two children.
func (op Operator) IsBinary() bool {
	switch op {
	case OpJoin, OpDiff, OpLeftJoin, OpUnion:
		return true
	}
	return false
}

// IsUnary reports whether the operator wraps exactly one child.
func (op Operator) IsUnary() bool {
	switch op {
	case OpToList, OpOrderBy, OpProject, OpDistinct, OpReduced, OpSlice:
		return true
	}
	return false
}
