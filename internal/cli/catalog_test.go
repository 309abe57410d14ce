package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTextOutput(t *testing.T) {
	out, _, err := executeCommand(t, "catalog")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 40)
	assert.Equal(t,
		"dht.create_uninitialized_tensor.i32.0 : () -> (i32.0) {shape: ints[0]}",
		lines[0])
	assert.Contains(t, out,
		"dht.tensor_equal.f64 : (f64.*, f64.*, chain) -> (i1.0, chain) side_effecting")
}

func TestCatalogJSONOutput(t *testing.T) {
	out, _, err := executeCommand(t, "--format", "json", "catalog")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.NewDecoder(bytes.NewReader([]byte(out))).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(40), data["total"])
}
