package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenarioFromTestdata(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/literal_operations.yaml")
	require.NoError(t, err)

	assert.Equal(t, "literal_operations", s.Name)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#", s.Prefixes["xsd"])
	assert.Equal(t, Term{"integer": 3}, s.Bindings["x"])
	require.Len(t, s.Steps, 17)
	assert.Equal(t, OpCompare, s.Steps[0].Op)
	assert.Equal(t, []string{"nocase"}, s.Steps[2].Flags)
	require.NotNil(t, s.Steps[0].Expect.Result)
	assert.Equal(t, "-1", *s.Steps[0].Expect.Result)
	assert.Equal(t, "TYPE", s.Steps[5].Expect.Error)
	assert.Len(t, s.Assertions, 3)
}

func TestLoadScenarioResolvesQueryPaths(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/algebra_translation.yaml")
	require.NoError(t, err)
	require.Len(t, s.Queries, 1)
	assert.Equal(t, filepath.Join("testdata", "queries", "foaf.cue"), s.Queries[0])
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "misspelled steps"
step:
  - op: print
    args: [{ integer: 1 }]
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestValidateScenario(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps: [{op: print, args: [{integer: 1}]}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps: [{op: print, args: [{integer: 1}]}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "unknown op",
			content: "name: n\ndescription: d\nsteps: [{op: negate, args: [{integer: 1}]}]\n",
			wantErr: `steps[0]: unknown op "negate"`,
		},
		{
			name:    "wrong arity",
			content: "name: n\ndescription: d\nsteps: [{op: compare, args: [{integer: 1}]}]\n",
			wantErr: "compare takes 2 args, got 1",
		},
		{
			name:    "cast without target",
			content: "name: n\ndescription: d\nsteps: [{op: cast, args: [{integer: 1}]}]\n",
			wantErr: "to is required for cast",
		},
		{
			name:    "algebra without query",
			content: "name: n\ndescription: d\nsteps: [{op: algebra}]\n",
			wantErr: "query is required for algebra",
		},
		{
			name:    "algebra without fixtures",
			content: "name: n\ndescription: d\nsteps: [{op: algebra, query: q}]\n",
			wantErr: "queries list is required",
		},
		{
			name:    "flags on equals",
			content: "name: n\ndescription: d\nsteps: [{op: equals, args: [{integer: 1}, {integer: 1}], flags: [nocase]}]\n",
			wantErr: "flags only apply to compare",
		},
		{
			name:    "unknown flag",
			content: "name: n\ndescription: d\nsteps: [{op: compare, args: [{integer: 1}, {integer: 1}], flags: [strict]}]\n",
			wantErr: `unknown flag "strict"`,
		},
		{
			name:    "empty expect",
			content: "name: n\ndescription: d\nsteps: [{op: print, args: [{integer: 1}], expect: {}}]\n",
			wantErr: "exactly one of result or error",
		},
		{
			name:    "missing query file",
			content: "name: n\ndescription: d\nqueries: [nope.cue]\nsteps: [{op: print, args: [{integer: 1}]}]\n",
			wantErr: "query file not found",
		},
		{
			name:    "unknown assertion",
			content: "name: n\ndescription: d\nsteps: [{op: print, args: [{integer: 1}]}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "step_count without op",
			content: "name: n\ndescription: d\nsteps: [{op: print, args: [{integer: 1}]}]\nassertions: [{type: step_count, count: 1}]\n",
			wantErr: "step_count needs a known op",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
