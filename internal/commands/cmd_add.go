package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/tracker"
)

type AddCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *tracker.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a new task",
		UsageText: "task-tracker add <description>",
		Description: `Adds a new task with status not_done. All remaining arguments are
joined with spaces to form the description.

Words are taken verbatim, including ones that start with a dash.

Examples:
  task-tracker add Buy groceries
  task-tracker add "Write the quarterly report"
  task-tracker add Lower the thermostat -2 degrees`,
		SkipFlagParsing: true,
		Action:          cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	if wantsHelp(c) {
		return cli.ShowSubcommandHelp(c)
	}

	description := joinArgs(c, 0)
	if description == "" {
		return usageError(msgNeedDescription)
	}

	created, err := cmd.app.Tasks.Add(ctx, description)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Task added successfully (ID: %d)\n", created.ID)
	return nil
}
