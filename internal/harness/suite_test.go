package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validSuiteYAML = `name: fill-and-print
description: Allocate a matrix, fill it, print it.
program: |
  input %c0 chain
  %t = dht.create_uninitialized_tensor.i32.2 [3, 2]
  %c1 = dht.fill_tensor_with_constant.i32 %t, %c0 0
  %c2 = dht.print_tensor.i32 %t, %c1
expect:
  ok: true
  round_trip: true
`

func TestLoadSuite(t *testing.T) {
	path := writeSuite(t, t.TempDir(), "fill.yaml", validSuiteYAML)

	suite, err := LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, "fill-and-print", suite.Name)
	assert.True(t, suite.Expect.OK)
	assert.True(t, suite.Expect.RoundTrip)
	assert.Contains(t, suite.Program, "dht.create_uninitialized_tensor.i32.2")
}

func TestLoadSuiteRejectsUnknownFields(t *testing.T) {
	path := writeSuite(t, t.TempDir(), "typo.yaml", `name: typo
description: Unknown field must fail loudly.
program: "input %c0 chain"
expect:
  ok: true
expectt:
  ok: false
`)
	_, err := LoadSuite(path)
	assert.Error(t, err)
}

func TestLoadSuiteValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "description: d\nprogram: p\nexpect:\n  ok: true\n"},
		{"missing description", "name: n\nprogram: p\nexpect:\n  ok: true\n"},
		{"missing program", "name: n\ndescription: d\nexpect:\n  ok: true\n"},
		{"empty expectation", "name: n\ndescription: d\nprogram: p\nexpect:\n  ok: false\n"},
		{"ok with diagnostics", "name: n\ndescription: d\nprogram: p\nexpect:\n  ok: true\n  diagnostics: [\"x\"]\n"},
		{"round_trip without ok", "name: n\ndescription: d\nprogram: p\nexpect:\n  round_trip: true\n  diagnostics: [\"x\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuite(t, t.TempDir(), "bad.yaml", tt.content)
			_, err := LoadSuite(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadDirSortsByPath(t *testing.T) {
	dir := t.TempDir()
	writeSuite(t, dir, "b.yaml", "name: b\ndescription: d\nprogram: p\nexpect:\n  ok: true\n")
	writeSuite(t, dir, "a.yml", "name: a\ndescription: d\nprogram: p\nexpect:\n  ok: true\n")
	writeSuite(t, dir, "notes.txt", "ignored")

	suites, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "a", suites[0].Name)
	assert.Equal(t, "b", suites[1].Name)
}
