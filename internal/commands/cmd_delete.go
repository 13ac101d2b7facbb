package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/tracker"
)

type DeleteCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(flags *Flags, app *tracker.App) *DeleteCmd {
	return &DeleteCmd{flags: flags, app: app}
}

// Register adds the delete command to the application
func (cmd *DeleteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		UsageText: "task-tracker delete <id>",
		Description: `Removes a task. Ids of the remaining tasks do not change.
If no task has the given id nothing is written and the command exits with an error.`,
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DeleteCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c, 0, msgNeedID)
	if err != nil {
		return err
	}

	if err := cmd.app.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return notFound(id)
		}
		return fmt.Errorf("delete task: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "Task deleted successfully.")
	return nil
}
