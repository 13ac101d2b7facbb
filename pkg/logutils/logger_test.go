package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	closer()
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer

	logger, closer, err := NewWithWriter("warn", "", &buf)
	require.NoError(t, err)
	defer closer()

	logger.Info().Msg("hidden")
	logger.Error().Msg("error saving tasks")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "error saving tasks")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "task-tracker.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug().Str("cmp", "test").Msg("written")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "written", entry["message"])
	assert.Equal(t, "debug", entry["level"])
}
