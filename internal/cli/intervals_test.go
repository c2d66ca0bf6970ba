package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalsPrintsTable(t *testing.T) {
	source := writeSource(t, "chord.music", "<1 7/6 4/3>:1")

	stdout, _, err := execute(t, "intervals", source)
	require.NoError(t, err)

	assert.Contains(t, stdout, "  1  7/6  4/3\n")
	assert.Contains(t, stdout, "6/7")
	assert.Contains(t, stdout, "8/7")
	assert.Contains(t, stdout, "3/4")
}

func TestIntervalsNotesFlag(t *testing.T) {
	source := writeSource(t, "chord.music", "<1 5/4>:1")

	stdout, _, err := execute(t, "intervals", source, "--notes")
	require.NoError(t, err)

	assert.Contains(t, stdout, "5/4")
	assert.Contains(t, stdout, "(")
	assert.Contains(t, stdout, "[")
}

func TestIntervalsJSONOutput(t *testing.T) {
	source := writeSource(t, "chord.music", "<1 3/2>:1")

	stdout, _, err := execute(t, "--format", "json", "intervals", source)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	table, ok := data["table"].(string)
	require.True(t, ok)
	assert.Contains(t, table, "3/2")
	assert.Contains(t, table, "2/3")
}

func TestIntervalsRefusesTempered(t *testing.T) {
	source := writeSource(t, "tempered.music", "3/2:1**12")

	stdout, _, err := execute(t, "intervals", source)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "NON_RATIONAL_INTERVAL")
}

func TestIntervalsMissingSource(t *testing.T) {
	_, _, err := execute(t, "intervals", "does-not-exist.music")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
