package commands

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/output"
	"github.com/colonyops/tasktracker/internal/tracker"
	"github.com/colonyops/tasktracker/pkg/iojson"
)

type ListCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	jsonOutput bool
	match      string
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *tracker.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks",
		UsageText: "task-tracker list [all|not_done|in_progress|done] [--match <glob>] [--json]",
		Description: `Lists tasks in the order they were added, optionally filtered by status.

The filter defaults to list.default_filter from the config file ("all").
"todo" and "in-progress" are accepted as aliases.

Examples:
  task-tracker list
  task-tracker list done
  task-tracker list --match "*report*"
  task-tracker list in_progress --json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "only show tasks whose description matches the glob pattern",
				Destination: &cmd.match,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: FilterCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	filter := cmd.app.Config.DefaultFilter()
	if c.NArg() > 0 {
		f, ok := task.ParseFilter(c.Args().First())
		if !ok {
			return usageError(fmt.Sprintf("Unknown filter %q. %s", c.Args().First(), msgInvalidFilterHint))
		}
		filter = f
	}

	if cmd.match != "" && !doublestar.ValidatePattern(cmd.match) {
		return usageError(fmt.Sprintf("Invalid --match pattern %q.", cmd.match))
	}

	tasks := cmd.app.Tasks.List(ctx, filter)
	if cmd.match != "" {
		tasks = matchDescriptions(tasks, cmd.match)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	return output.WriteTasks(out, tasks, output.Options{
		Glyphs: cmd.app.Config.List.ShowGlyphs(),
	})
}

// matchDescriptions keeps tasks whose description matches the glob pattern.
// The pattern must already be validated.
func matchDescriptions(tasks []task.Task, pattern string) []task.Task {
	matched := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if ok, _ := doublestar.Match(pattern, t.Description); ok {
			matched = append(matched, t)
		}
	}
	return matched
}
