package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/tracker"
)

// markTarget describes one mark-* subcommand.
type markTarget struct {
	name    string
	status  task.Status
	label   string
	aliases []string
}

var markTargets = []markTarget{
	{name: "mark-in-progress", status: task.StatusInProgress, label: "in progress", aliases: []string{"start"}},
	{name: "mark-done", status: task.StatusDone, label: "done", aliases: []string{"done"}},
	{name: "mark-todo", status: task.StatusNotDone, label: "not done", aliases: []string{"reopen"}},
}

// MarkCmd implements the mark-* status commands.
type MarkCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewMarkCmd creates a new mark command
func NewMarkCmd(flags *Flags, app *tracker.App) *MarkCmd {
	return &MarkCmd{flags: flags, app: app}
}

// Register adds one command per status to the application
func (cmd *MarkCmd) Register(app *cli.Command) *cli.Command {
	for _, target := range markTargets {
		app.Commands = append(app.Commands, &cli.Command{
			Name:      target.name,
			Aliases:   target.aliases,
			Usage:     fmt.Sprintf("Mark a task as %s", target.label),
			UsageText: fmt.Sprintf("task-tracker %s <id>", target.name),
			Description: fmt.Sprintf(`Sets the status of a task to %s. Any status can be set from any other.
If no task has the given id nothing is written and the command exits with an error.`, target.status),
			ShellComplete: TaskIDCompleter(cmd.app),
			Action:        cmd.action(target),
		})
	}

	return app
}

func (cmd *MarkCmd) action(target markTarget) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		id, err := parseID(c, 0, msgNeedID)
		if err != nil {
			return err
		}

		if _, err := cmd.app.Tasks.Mark(ctx, id, target.status); err != nil {
			if errors.Is(err, task.ErrNotFound) {
				return notFound(id)
			}
			return fmt.Errorf("mark task: %w", err)
		}

		_, _ = fmt.Fprintf(c.Root().Writer, "Task marked as %s successfully.\n", target.label)
		return nil
	}
}
