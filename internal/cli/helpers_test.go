package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const foafFixtures = `
package fixtures

_foaf: {
	prefixes: foaf: "http://xmlns.com/foaf/0.1/"
	triples: [
		{subject: {var: "s"}, predicate: {qname: "foaf:name"}, object: {var: "name"}},
		{subject: {var: "s"}, predicate: {qname: "foaf:nick"}, object: {var: "name"}},
	]
}

query: people: _foaf & {
	pattern: {op: "basic", start: 0, end: 0}
}

query: alternatives: _foaf & {
	pattern: {
		op: "union"
		patterns: [
			{op: "basic", start: 0, end: 0},
			{op: "basic", start: 1, end: 1},
		]
	}
}

query: grouped: _foaf & {
	pattern: {op: "group", patterns: [{op: "basic", start: 0, end: 1}]}
}
`

const unlowerableFixture = `
package fixtures

query: broken: {
	triples: [
		{subject: {var: "s"}, predicate: {uri: "http://ex/p"}, object: {var: "o"}},
		{subject: {var: "s"}, predicate: {uri: "http://ex/q"}, object: {var: "o"}},
	]
	pattern: {
		op: "union"
		patterns: [
			{op: "basic", start: 0, end: 0},
			{op: "optional", patterns: [{op: "basic", start: 1, end: 1}]},
		]
	}
}
`

const literalScenario = `name: ordering
description: "Integer ordering and boolean values"
steps:
  - op: compare
    args: [{ integer: 10 }, { integer: 9 }]
    expect: { result: "1" }
  - op: ebv
    args: [{ string: "" }]
    expect: { result: "false" }
assertions:
  - type: antisymmetric
`

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// fixturesDir creates a temporary fixtures directory holding one file.
func fixturesDir(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "queries.cue", content)
	return dir
}
