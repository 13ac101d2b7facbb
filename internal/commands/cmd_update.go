package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/tracker"
)

type UpdateCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(flags *Flags, app *tracker.App) *UpdateCmd {
	return &UpdateCmd{flags: flags, app: app}
}

// Register adds the update command to the application
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Update a task's description",
		UsageText: "task-tracker update <id> <description>",
		Description: `Replaces the description of an existing task. The status is unchanged.
If no task has the given id nothing is written and the command exits with an error.

Words after the id are taken verbatim, including ones that start with a dash.

Examples:
  task-tracker update 1 Buy groceries and cook dinner
  task-tracker update 2 Lower the thermostat -2 degrees`,
		SkipFlagParsing: true,
		ShellComplete:   TaskIDCompleter(cmd.app),
		Action:          cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	if wantsHelp(c) {
		return cli.ShowSubcommandHelp(c)
	}

	if c.NArg() < 2 {
		return usageError(msgNeedIDAndDesc)
	}

	id, err := parseID(c, 0, msgNeedIDAndDesc)
	if err != nil {
		return err
	}

	description := joinArgs(c, 1)
	if description == "" {
		return usageError(msgNeedIDAndDesc)
	}

	if _, err := cmd.app.Tasks.Update(ctx, id, description); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return notFound(id)
		}
		return fmt.Errorf("update task: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "Task updated successfully.")
	return nil
}

func notFound(id int) error {
	return fmt.Errorf("task %d: %w", id, task.ErrNotFound)
}
