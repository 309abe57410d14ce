package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "suite failed")))

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := errors.New("db locked")
	err := WrapExitError(ExitCommandError, "failed to open database", inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "failed to open database: db locked", err.Error())
}

func TestOutputFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]any{"total": 40}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestOutputFormatterTextError(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Error("E_VALIDATION_FAILED", "validation failed", nil))
	assert.Equal(t, "Error [E_VALIDATION_FAILED]: validation failed\n", buf.String())
}

func TestVerboseLogRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}

	f.VerboseLog("checked %d files", 3)
	assert.Empty(t, out.String(), "verbose output must not corrupt the JSON stream")
	assert.Equal(t, "checked 3 files\n", errOut.String())

	quiet := &OutputFormatter{Format: "text", Writer: &out}
	quiet.VerboseLog("hidden")
	assert.Empty(t, out.String())
}
