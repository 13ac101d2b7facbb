package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLine(&buf, map[string]any{"id": 1}))
	require.NoError(t, WriteLine(&buf, map[string]any{"id": 2}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{`{"id":1}`, `{"id":2}`}, lines)
}

func TestWriteLine_Unmarshalable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLine(&buf, map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"description":"a"}]`), 0o644))

	fr := &FileReader[[]map[string]string]{fileFlagValue: path}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "a", got[0]["description"])
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader[[]string]{Stdin: strings.NewReader(`["x","y"]`)}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestFileReader_InvalidJSON(t *testing.T) {
	fr := &FileReader[[]string]{Stdin: strings.NewReader(`[`)}
	_, err := fr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}
