package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTestCommand(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTestCommandPassingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ordering.yaml", literalScenario)

	output, err := runTestCommand(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ ordering")
	assert.Contains(t, output, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrong.yaml", `name: wrong
description: "An expectation that does not hold"
steps:
  - op: ebv
    args: [{ integer: 0 }]
    expect: { result: "true" }
`)

	output, err := runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "✗ wrong")
	assert.Contains(t, output, `steps[0] (ebv): expected "true", got "false"`)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "typo.yaml", `name: typo
description: "Misspelled steps key"
step:
  - op: print
`)

	output, err := runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, output, "✗ typo.yaml")
	assert.Contains(t, output, "failed to load scenario")
}

func TestTestCommandGoldenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ordering.yaml", literalScenario)
	goldenPath := filepath.Join(dir, "golden", "ordering.golden")

	output, err := runTestCommand(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, output, "✓ ordering")

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name":"ordering"`)

	_, err = runTestCommand(t, "text", dir)
	require.NoError(t, err, "trace matches freshly written golden file")

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"ordering","trace":[]}`), 0644))
	output, err = runTestCommand(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, output, "trace does not match golden file")
}

func TestTestCommandJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ordering.yaml", literalScenario)

	output, err := runTestCommand(t, "json", dir)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Len(t, resp.Data.Scenarios[0].TraceHash, 64)
}

func TestTestCommandNoScenarios(t *testing.T) {
	output, err := runTestCommand(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, output, "No scenarios found.")
}

func TestTestCommandMissingDirectory(t *testing.T) {
	_, err := runTestCommand(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_a.yaml", literalScenario)
	writeFile(t, dir, "literal_b.yml", literalScenario)
	writeFile(t, dir, "algebra.yaml", literalScenario)
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "golden/stale.yaml", "ignored")

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = findScenarioFiles(dir, "literal_*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = findScenarioFiles(dir, "[")
	assert.Error(t, err)
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "ordering.golden"),
		goldenFilePath(filepath.Join("scenarios", "ordering.yaml")))
}
