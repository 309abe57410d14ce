package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorhost/dialect/internal/dht"
	"github.com/tensorhost/dialect/internal/store"
	"github.com/tensorhost/dialect/internal/syntax"
)

func recordTestProgram(t *testing.T, dbPath string) string {
	t.Helper()
	prog, errs := syntax.Parse(dht.MustRegistry(), "input", []byte(validProgram), nil)
	require.Empty(t, errs)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	id, err := st.RecordProgram(context.Background(), prog, validProgram)
	require.NoError(t, err)
	return id
}

func TestProgramsList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "programs.db")
	id := recordTestProgram(t, dbPath)

	out, _, err := executeCommand(t, "programs", "list", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "3 op(s)")
}

func TestProgramsShow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "programs.db")
	id := recordTestProgram(t, dbPath)

	out, _, err := executeCommand(t, "programs", "show", id, "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, validProgram, out)
}

func TestProgramsShowNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "programs.db")
	recordTestProgram(t, dbPath)

	_, _, err := executeCommand(t, "programs", "show", strings.Repeat("0", 64), "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "program not found")
}

func TestProgramsUsing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "programs.db")
	id := recordTestProgram(t, dbPath)

	out, _, err := executeCommand(t, "programs", "using", "dht.print_tensor.i32", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, id+"\n", out)

	out, _, err = executeCommand(t, "programs", "using", "dht.print_tensor.f64", "--db", dbPath)
	require.NoError(t, err)
	assert.Empty(t, out)
}
