// Package harness provides conformance testing for the literal and
// algebra packages.
//
// The harness runs YAML scenarios whose steps apply one operation each to
// literal terms or to a compiled query fixture, checks the expected
// outcome, and records a trace that can be compared against a golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	queries:
//	  - path/to/fixtures.cue
//	prefixes:
//	  xsd: "http://www.w3.org/2001/XMLSchema#"
//	bindings:
//	  x: { integer: 3 }
//	steps:
//	  - op: compare
//	    args: [{ var: x }, { double: 2.5 }]
//	    expect: { result: "1" }
//	  - op: cast
//	    args: [{ string: "abc" }]
//	    to: xsd:integer
//	    expect: { error: CAST }
//	  - op: algebra
//	    query: people
//	assertions:
//	  - type: antisymmetric
//	  - type: step_count
//	    op: compare
//	    count: 1
//
// Terms use the same shape as the CUE query fixtures read by the
// compiler package.
//
// # Operations
//
//   - compare: sign of literal.Compare over two terms; flags nocase, xquery
//   - equals: literal.Equals over two terms
//   - ebv: effective boolean value of one term
//   - cast: literal.Cast of one term to the datatype in "to"
//   - print: debug rendering of one term
//   - algebra: translation of a named query fixture, rendered as text
//
// # Assertion Types
//
//   - antisymmetric: every successful compare step reverses sign when its
//     operands are swapped
//   - equals_consistent: every equals step that holds has a compare of 0
//   - step_count: an operation appears exactly N times
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/ordering.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
