package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/sparqlcore/internal/literal"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Offending events
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nEvents:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", event.Seq, event.Op, strings.Join(event.Args, ", "))
		}
	}

	return buf.String()
}

// evaluateAssertions checks every scenario assertion against the trace
// and returns one message per failure.
func (h *Harness) evaluateAssertions(scenario *Scenario, result *Result) []string {
	var msgs []string
	for _, a := range scenario.Assertions {
		var err error
		switch a.Type {
		case AssertAntisymmetric:
			err = h.assertAntisymmetric(scenario.Steps, result.Trace)
		case AssertEqualsConsistent:
			err = h.assertEqualsConsistent(scenario.Steps, result.Trace)
		case AssertStepCount:
			err = assertStepCount(result.Trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}

// assertAntisymmetric re-runs every successful compare step with its
// operands swapped and checks that the sign flips.
func (h *Harness) assertAntisymmetric(steps []Step, trace []TraceEvent) error {
	var bad []TraceEvent
	var actual []string

	for i, step := range steps {
		event := trace[i]
		if step.Op != OpCompare || event.Error != "" {
			continue
		}
		lits, err := h.terms(step)
		if err != nil {
			return err
		}
		c, err := literal.Compare(lits[1], lits[0], compareFlags(step.Flags))
		freeAll(lits)

		want := "-" + event.Result
		if event.Result == "0" {
			want = "0"
		} else if strings.HasPrefix(event.Result, "-") {
			want = event.Result[1:]
		}

		got := fmt.Sprint(sign(c))
		if err != nil {
			got = "error " + errorCode(err)
		}
		if got != want {
			bad = append(bad, event)
			actual = append(actual, fmt.Sprintf("step %d: %s then %s", event.Seq, event.Result, got))
		}
	}

	if len(bad) > 0 {
		return &AssertionError{
			Type:     AssertAntisymmetric,
			Expected: "compare(b, a) = -compare(a, b)",
			Actual:   strings.Join(actual, "; "),
			Trace:    bad,
		}
	}
	return nil
}

// assertEqualsConsistent checks that every equals step that holds has a
// plain compare of 0. Pairs compare rejects are skipped.
func (h *Harness) assertEqualsConsistent(steps []Step, trace []TraceEvent) error {
	var bad []TraceEvent
	var actual []string

	for i, step := range steps {
		event := trace[i]
		if step.Op != OpEquals || event.Result != "true" {
			continue
		}
		lits, err := h.terms(step)
		if err != nil {
			return err
		}
		c, err := literal.Compare(lits[0], lits[1], 0)
		freeAll(lits)
		if err == nil && c != 0 {
			bad = append(bad, event)
			actual = append(actual, fmt.Sprintf("step %d: compare %d", event.Seq, sign(c)))
		}
	}

	if len(bad) > 0 {
		return &AssertionError{
			Type:     AssertEqualsConsistent,
			Expected: "equals(a, b) implies compare(a, b) = 0",
			Actual:   strings.Join(actual, "; "),
			Trace:    bad,
		}
	}
	return nil
}

// assertStepCount checks that an operation appears exactly Count times.
func assertStepCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == a.Op {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertStepCount,
			Expected: fmt.Sprintf("%s exactly %d times", a.Op, a.Count),
			Actual:   fmt.Sprintf("%d times", count),
		}
	}
	return nil
}
