package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/tasktracker/internal/tracker"
)

type ClearCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	yes bool

	// overridable for tests
	isTerminal func() bool
	confirm    func(count int) (bool, error)
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *tracker.App) *ClearCmd {
	return &ClearCmd{
		flags:      flags,
		app:        app,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		confirm:    confirmClear,
	}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Delete all tasks",
		UsageText: "task-tracker clear [--yes]",
		Description: `Removes every task from the task file.

Asks for confirmation when run from a terminal; use --yes in scripts.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	if !cmd.yes {
		if !cmd.isTerminal() {
			return usageError("Refusing to clear tasks without confirmation. Use --yes.")
		}

		count := len(cmd.app.Tasks.All(ctx))
		ok, err := cmd.confirm(count)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			_, _ = fmt.Fprintln(c.Root().Writer, "Clear cancelled.")
			return nil
		}
	}

	removed := cmd.app.Tasks.Clear(ctx)
	_, _ = fmt.Fprintf(c.Root().Writer, "Removed %d task(s).\n", removed)
	return nil
}

func confirmClear(count int) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Delete all tasks?").
		Description(fmt.Sprintf("%d task(s) will be removed. This cannot be undone.", count)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}
