package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tasktracker/internal/core/task"
)

func fixture(id int, desc string, status task.Status) task.Task {
	ts := task.NewTimestamp(time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local))
	return task.Task{ID: id, Description: desc, Status: status, CreatedAt: ts, UpdatedAt: ts}
}

func TestWriteTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, nil, Options{Glyphs: true}))
	assert.Equal(t, "No tasks found.", strings.TrimSpace(buf.String()))
}

func TestWriteTasks_Records(t *testing.T) {
	var buf bytes.Buffer
	tasks := []task.Task{
		fixture(1, "Buy milk", task.StatusNotDone),
		fixture(2, "Ship release", task.StatusDone),
	}

	require.NoError(t, WriteTasks(&buf, tasks, Options{Glyphs: true}))
	out := buf.String()

	assert.Contains(t, out, "Task #1")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Status: not_done")
	assert.Contains(t, out, "📝")
	assert.Contains(t, out, "Task #2")
	assert.Contains(t, out, "✅")
	assert.Contains(t, out, "Created: 2024-05-01 09:30:00")
	assert.Contains(t, out, "Updated: 2024-05-01 09:30:00")
	assert.Less(t, strings.Index(out, "Task #1"), strings.Index(out, "Task #2"))
}

func TestFormatTask_WithoutGlyphs(t *testing.T) {
	out := FormatTask(fixture(3, "Quiet", task.StatusInProgress), Options{})
	assert.NotContains(t, out, "🏗️")
	assert.Contains(t, out, "Status: in_progress")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}

func TestStatusGlyph(t *testing.T) {
	assert.Equal(t, "📝", StatusGlyph(task.StatusNotDone))
	assert.Equal(t, "🏗️", StatusGlyph(task.StatusInProgress))
	assert.Equal(t, "✅", StatusGlyph(task.StatusDone))
	assert.Equal(t, "❓", StatusGlyph(task.Status("blocked")))
}

func TestFormatTask_UnknownStatus(t *testing.T) {
	out := FormatTask(fixture(4, "Mystery", task.Status("blocked")), Options{Glyphs: true})
	assert.Contains(t, out, "❓")
	assert.Contains(t, out, "blocked")
	assert.Equal(t, "unknown", StatusText(""))
}
