package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRunLiteralScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/literal_operations.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 17)

	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, []string{"integer 1", "double 2.5"}, result.Trace[0].Args)
	assert.Equal(t, "variable(x=integer 3)", result.Trace[4].Args[0])
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", result.Trace[13].To)
}

func TestRunAlgebraScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/algebra_translation.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 4)
	assert.Contains(t, result.Trace[1].Result, "Union(")
	assert.Equal(t, ErrorCodeTranslate, result.Trace[3].Error)
}

func TestRunReportsFailedExpectations(t *testing.T) {
	s := &Scenario{
		Name:        "mismatch",
		Description: "expectations that do not hold",
		Steps: []Step{
			{Op: OpEBV, Args: []Term{{"integer": 0}}, Expect: &Expect{Result: strPtr("true")}},
			{Op: OpPrint, Args: []Term{{"integer": 5}}, Expect: &Expect{Error: "TYPE"}},
			{Op: OpEquals, Args: []Term{{"integer": 2}, {"integer": 2}}, Expect: &Expect{Result: strPtr("true")}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{
		`steps[0] (ebv): expected "true", got "false"`,
		`steps[1] (print): expected error TYPE, got "integer 5"`,
	}, result.Errors)
}

func TestRunStepCountAssertion(t *testing.T) {
	s := &Scenario{
		Name:        "count",
		Description: "wrong count",
		Steps: []Step{
			{Op: OpPrint, Args: []Term{{"boolean": true}}},
		},
		Assertions: []Assertion{{Type: AssertStepCount, Op: OpPrint, Count: 2}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: step_count")
	assert.Contains(t, result.Errors[0], "print exactly 2 times")
}

func TestRunPrefixedTerms(t *testing.T) {
	s := &Scenario{
		Name:        "prefixed",
		Description: "qnames in terms",
		Prefixes:    map[string]string{"ex": "http://example.org/"},
		Steps: []Step{
			{Op: OpPrint, Args: []Term{{"qname": "ex:thing"}}, Expect: &Expect{Result: strPtr("uri<http://example.org/thing>")}},
			{Op: OpPrint, Args: []Term{{"string": "7", "datatype_qname": "ex:unknown"}}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, `string("7"^^<http://example.org/unknown>)`, result.Trace[1].Result)
}

func TestRunInfrastructureErrors(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr string
	}{
		{
			name:    "bad term",
			step:    Step{Op: OpPrint, Args: []Term{{"colour": "red"}}},
			wantErr: "term must have one of",
		},
		{
			name:    "unknown prefix",
			step:    Step{Op: OpPrint, Args: []Term{{"qname": "nope:x"}}},
			wantErr: "unknown prefix",
		},
		{
			name:    "unresolvable cast target",
			step:    Step{Op: OpCast, Args: []Term{{"integer": 1}}, To: "nope:integer"},
			wantErr: "cast target",
		},
		{
			name:    "unknown query",
			step:    Step{Op: OpAlgebra, Query: "missing"},
			wantErr: `unknown query "missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scenario{Name: "infra", Description: tt.name, Steps: []Step{tt.step}}
			_, err := Run(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "steps[0]")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTraceHashIsStable(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/literal_operations.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	h1, err := TraceHash(s.Name, first)
	require.NoError(t, err)
	h2, err := TraceHash(s.Name, second)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestCloseReleasesBindings(t *testing.T) {
	s := &Scenario{
		Name:        "bindings",
		Description: "bound literals are released on close",
		Bindings:    map[string]Term{"x": {"integer": 3}, "y": {"string": "a"}},
		Steps:       []Step{{Op: OpPrint, Args: []Term{{"var": "x"}}}},
	}

	h, err := newHarness(s)
	require.NoError(t, err)

	x, ok := h.scratch.LookupVariable("x")
	require.True(t, ok)
	bound := x.Value
	require.NotNil(t, bound)
	assert.Equal(t, 1, bound.Usage())

	h.close()
	assert.False(t, x.IsBound())
	assert.Equal(t, 0, bound.Usage())

	y, ok := h.scratch.LookupVariable("y")
	require.True(t, ok)
	assert.False(t, y.IsBound())
}
