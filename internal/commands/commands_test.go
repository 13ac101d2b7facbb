package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/config"
	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/store/jsonfile"
	"github.com/colonyops/tasktracker/internal/tracker"
)

type harness struct {
	flags *Flags
	app   *tracker.App
	path  string

	terminal bool
	answer   bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	store := jsonfile.NewTaskStore(cfg.TasksPath())
	svc := tracker.NewTaskService(store, zerolog.Nop())

	return &harness{
		flags: &Flags{Config: &cfg},
		app:   tracker.NewApp(svc, &cfg),
		path:  cfg.TasksPath(),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := &cli.Command{
		Name:   "task-tracker",
		Writer: &buf,
	}

	clearCmd := NewClearCmd(h.flags, h.app)
	clearCmd.isTerminal = func() bool { return h.terminal }
	clearCmd.confirm = func(int) (bool, error) { return h.answer, nil }

	NewAddCmd(h.flags, h.app).Register(root)
	NewUpdateCmd(h.flags, h.app).Register(root)
	NewDeleteCmd(h.flags, h.app).Register(root)
	NewMarkCmd(h.flags, h.app).Register(root)
	NewListCmd(h.flags, h.app).Register(root)
	NewImportCmd(h.flags, h.app).Register(root)
	NewConfigValidateCmd(h.flags).Register(root)
	clearCmd.Register(root)

	err := root.Run(context.Background(), append([]string{"task-tracker"}, args...))
	return buf.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err, "args: %v", args)
	return out
}

func (h *harness) tasks(t *testing.T) []task.Task {
	t.Helper()
	tasks, err := jsonfile.NewTaskStore(h.path).LoadAll(context.Background())
	require.NoError(t, err)
	return tasks
}

func (h *harness) fileContents(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

func TestAdd(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "add", "Test", "task")
	assert.Contains(t, out, "Task added successfully")
	assert.Contains(t, out, "(ID: 1)")

	tasks := h.tasks(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Test task", tasks[0].Description)
	assert.Equal(t, task.StatusNotDone, tasks[0].Status)
}

func TestAdd_MissingDescription(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "add")
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidArgument)
	assert.Equal(t, "Please provide a task description.", err.Error())
	assert.Empty(t, h.fileContents(t))
}

func TestUpdate(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Original task")

	out := h.mustRun(t, "update", "1", "Updated", "task")
	assert.Contains(t, out, "Task updated successfully.")

	out = h.mustRun(t, "list")
	assert.Contains(t, out, "Updated task")
	assert.NotContains(t, out, "Original task")
}

func TestUpdate_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing everything", []string{"update"}, msgNeedIDAndDesc},
		{"missing description", []string{"update", "1"}, msgNeedIDAndDesc},
		{"non-numeric id", []string{"update", "one", "text"}, msgInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.mustRun(t, "add", "Untouched")
			before := h.fileContents(t)

			_, err := h.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, before, h.fileContents(t))
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "update", "9", "nothing")
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrNotFound)
	assert.Contains(t, err.Error(), "task 9")
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Task to delete")
	h.mustRun(t, "add", "Task to keep")

	out := h.mustRun(t, "delete", "1")
	assert.Contains(t, out, "Task deleted successfully.")

	out = h.mustRun(t, "list")
	assert.NotContains(t, out, "Task to delete")
	assert.Contains(t, out, "Task #2")
}

func TestDelete_NonNumericID(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "delete", "abc")
	require.Error(t, err)
	assert.Equal(t, msgInvalidID, err.Error())
}

func TestMark(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Task in progress")
	h.mustRun(t, "add", "Task to complete")

	out := h.mustRun(t, "mark-in-progress", "1")
	assert.Contains(t, out, "Task marked as in progress successfully.")

	out = h.mustRun(t, "mark-done", "2")
	assert.Contains(t, out, "Task marked as done successfully.")

	out = h.mustRun(t, "list", "in-progress")
	assert.Contains(t, out, "Task in progress")
	assert.NotContains(t, out, "Task to complete")

	out = h.mustRun(t, "list", "done")
	assert.Contains(t, out, "Task to complete")
	assert.NotContains(t, out, "Task in progress")

	out = h.mustRun(t, "mark-todo", "2")
	assert.Contains(t, out, "Task marked as not done successfully.")
	assert.Equal(t, task.StatusNotDone, h.tasks(t)[1].Status)
}

func TestMark_MissingID(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "mark-done")
	require.Error(t, err)
	assert.Equal(t, msgNeedID, err.Error())
}

func TestList_Filters(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Todo task")
	h.mustRun(t, "add", "In progress task")
	h.mustRun(t, "mark-in-progress", "2")
	h.mustRun(t, "add", "Done task")
	h.mustRun(t, "mark-done", "3")

	tests := []struct {
		filter  string
		want    []string
		exclude []string
	}{
		{"not_done", []string{"Task #1", "Todo task"}, []string{"In progress task", "Done task"}},
		{"todo", []string{"Todo task"}, []string{"Done task"}},
		{"in_progress", []string{"Task #2", "In progress task"}, []string{"Todo task", "Done task"}},
		{"done", []string{"Task #3", "Done task"}, []string{"Todo task", "In progress task"}},
		{"all", []string{"Todo task", "In progress task", "Done task"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			out := h.mustRun(t, "list", tt.filter)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.exclude {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestList_Empty(t *testing.T) {
	h := newHarness(t)

	for _, filter := range []string{"all", "not_done", "in_progress", "done"} {
		out := h.mustRun(t, "list", filter)
		assert.Equal(t, "No tasks found.", strings.TrimSpace(out))
	}
}

func TestList_UnknownFilter(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "list", "someday")
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "Unknown filter")
}

func TestList_Match(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Write report")
	h.mustRun(t, "add", "Buy milk")

	out := h.mustRun(t, "list", "--match", "*report*")
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Buy milk")

	_, err := h.run(t, "list", "--match", "[unclosed")
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidArgument)
}

func TestList_JSON(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "First")
	h.mustRun(t, "add", "Second")

	out := h.mustRun(t, "list", "--json")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":1`)
	assert.Contains(t, lines[0], `"status":"not_done"`)
	assert.Contains(t, lines[1], `"description":"Second"`)
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "One")
	h.mustRun(t, "add", "Two")

	out := h.mustRun(t, "clear", "--yes")
	assert.Contains(t, out, "Removed 2 task(s).")
	assert.Empty(t, h.tasks(t))
}

func TestClear_RequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Keep me")

	_, err := h.run(t, "clear")
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidArgument)
	assert.Len(t, h.tasks(t), 1)

	h.terminal = true
	h.answer = false
	out := h.mustRun(t, "clear")
	assert.Contains(t, out, "Clear cancelled.")
	assert.Len(t, h.tasks(t), 1)

	h.answer = true
	out = h.mustRun(t, "clear")
	assert.Contains(t, out, "Removed 1 task(s).")
	assert.Empty(t, h.tasks(t))
}

func TestImport(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Existing")

	in := filepath.Join(t.TempDir(), "backup.json")
	content := `[
  {"id": 7, "description": "Restored", "status": "done", "createdAt": "2024-01-02 03:04:05", "updatedAt": "2024-01-03 03:04:05"},
  {"description": "Fresh"}
]`
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))

	out := h.mustRun(t, "import", "-f", in)
	assert.Contains(t, out, "Imported 2 task(s).")

	tasks := h.tasks(t)
	require.Len(t, tasks, 3)
	assert.Equal(t, 2, tasks[1].ID)
	assert.Equal(t, task.StatusDone, tasks[1].Status)
	assert.Equal(t, "2024-01-02 03:04:05", tasks[1].CreatedAt.String())
	assert.Equal(t, 3, tasks[2].ID)
}

func TestImport_BadFile(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "import", "-f", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidArgument)
}

func TestConfigValidate(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "config", "validate")
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, h.path)

	out = h.mustRun(t, "config", "validate", "--format", "json")
	assert.Contains(t, out, `"valid": true`)
}

func TestConfigValidate_Invalid(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.MkdirAll(h.path, 0o755))

	out, err := h.run(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "tasks_file")
}

func TestImport_SchemaViolation(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Existing")
	before := h.fileContents(t)

	in := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(in, []byte(`[{"description":"ok"},{"status":"later"}]`), 0o644))

	_, err := h.run(t, "import", "-f", in)
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "Invalid task file")
	assert.Equal(t, before, h.fileContents(t))
}

func TestAdd_DashPrefixedWords(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "add", "Lower", "the", "thermostat", "-2", "degrees")
	h.mustRun(t, "add", "--", "-v", "is", "verbose")

	tasks := h.tasks(t)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Lower the thermostat -2 degrees", tasks[0].Description)
	assert.Equal(t, "-v is verbose", tasks[1].Description)
}

func TestUpdate_DashPrefixedWords(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Set thermostat")

	h.mustRun(t, "update", "1", "Set", "thermostat", "--lower", "-2")

	tasks := h.tasks(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Set thermostat --lower -2", tasks[0].Description)
}

func TestAdd_HelpFlagDoesNotAddTask(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "add", "--help")
	require.NoError(t, err)
	assert.Empty(t, h.fileContents(t))
}

func TestNotFoundBehaviorIsDocumented(t *testing.T) {
	h := newHarness(t)

	for _, name := range []string{"delete", "mark-done"} {
		out, err := h.run(t, name, "--help")
		require.NoError(t, err)
		assert.Contains(t, out, "If no task has the given id nothing is written", name)
	}
}
