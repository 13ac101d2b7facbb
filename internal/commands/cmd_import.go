package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/tracker"
	"github.com/colonyops/tasktracker/pkg/iojson"
)

type ImportCmd struct {
	flags  *Flags
	app    *tracker.App
	reader iojson.FileReader[json.RawMessage]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *tracker.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Append tasks from a JSON task file",
		UsageText: "task-tracker import [-f <file>]",
		Description: `Reads a JSON array of tasks (the task file format) and appends them
with new ids. The input is checked against the task file schema first:
descriptions are required and status defaults to not_done.

Examples:
  task-tracker import -f old-tasks.json
  cat backup.json | task-tracker import`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	raw, err := cmd.reader.Read()
	if err != nil {
		return usageError(fmt.Sprintf("Could not read tasks: %v", err))
	}

	if err := task.ValidateDocument(raw); err != nil {
		return usageError(fmt.Sprintf("Invalid task file: %v", err))
	}

	var items []task.Task
	if err := json.Unmarshal(raw, &items); err != nil {
		return usageError(fmt.Sprintf("Could not read tasks: %v", err))
	}

	imported, err := cmd.app.Tasks.Import(ctx, items)
	if err != nil {
		return fmt.Errorf("import tasks: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Imported %d task(s).\n", len(imported))
	return nil
}
