package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/tracker"
)

// TaskIDCompleter returns a ShellCompleteFunc that suggests existing task ids
// as positional completions. Set this as the ShellComplete field on any
// cli.Command that accepts a task id as its first argument.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TaskIDCompleter(app *tracker.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if delegateFlagCompletion(ctx, cmd) {
			return
		}

		if app == nil || app.Tasks == nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range app.Tasks.All(ctx) {
			_, _ = fmt.Fprintf(w, "%d:%s\n", t.ID, t.Description)
		}
	}
}

// FilterCompleter returns a ShellCompleteFunc that suggests list filters.
func FilterCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if delegateFlagCompletion(ctx, cmd) {
			return
		}

		w := cmd.Root().Writer
		_, _ = fmt.Fprintln(w, task.FilterAll)
		for _, s := range task.Statuses() {
			_, _ = fmt.Fprintln(w, s)
		}
	}
}

// delegateFlagCompletion runs the default flag completion when the last
// typed argument is a flag and reports whether it did.
func delegateFlagCompletion(ctx context.Context, cmd *cli.Command) bool {
	if args := cmd.Args(); args.Present() {
		last := args.Slice()[args.Len()-1]
		if len(last) > 0 && last[0] == '-' {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return true
		}
	}
	return false
}
