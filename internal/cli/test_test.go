package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingSuite = `name: fill-and-print
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

const failingSuite = `name: chain-missing
description: Expects a diagnostic the program does not produce.
program: |
  %t = dht.create_uninitialized_tensor.i32.0 []
expect:
  diagnostics:
    - "input:1:1: unknown operation dht.create_uninitialized_tensor.i32.0"
`

func writeSuiteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestTestCommandAllPassing(t *testing.T) {
	dir := t.TempDir()
	writeSuiteFile(t, dir, "fill.yaml", passingSuite)

	out, _, err := executeCommand(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ fill-and-print")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All suites passed")
}

func TestTestCommandShippedSuites(t *testing.T) {
	out, _, err := executeCommand(t, "test", filepath.Join("..", "..", "suites"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ values-count-mismatch")
	assert.Contains(t, out, "✓ All suites passed")
}

func TestTestCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeSuiteFile(t, dir, "fill.yaml", passingSuite)
	writeSuiteFile(t, dir, "chain.yaml", failingSuite)

	out, _, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ chain-missing")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeSuiteFile(t, dir, "fill.yaml", passingSuite)
	writeSuiteFile(t, dir, "chain.yaml", failingSuite)

	out, _, err := executeCommand(t, "test", dir, "--filter", "fill-*")
	require.NoError(t, err)
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandMissingDirIsCommandError(t *testing.T) {
	_, _, err := executeCommand(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, _, err := executeCommand(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No suites found.")
}
