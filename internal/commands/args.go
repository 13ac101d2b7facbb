package commands

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/task"
)

// UsageError is a user-facing argument error. It is reported verbatim and
// matches task.ErrInvalidArgument.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func (e *UsageError) Unwrap() error { return task.ErrInvalidArgument }

func usageError(msg string) error {
	return &UsageError{Msg: msg}
}

const (
	msgNeedDescription   = "Please provide a task description."
	msgNeedIDAndDesc     = "Please provide a task ID and new description."
	msgNeedID            = "Please provide a task ID."
	msgInvalidID         = "Invalid task ID. Please provide a numeric ID."
	msgInvalidFilterHint = "Valid filters: all, not_done, in_progress, done."
)

// parseID parses the positional argument at index i as a task id.
func parseID(c *cli.Command, i int, missing string) (int, error) {
	if c.NArg() <= i {
		return 0, usageError(missing)
	}

	id, err := strconv.Atoi(strings.TrimSpace(c.Args().Get(i)))
	if err != nil {
		return 0, usageError(msgInvalidID)
	}

	return id, nil
}

// joinArgs joins the positional arguments from index i onward with spaces.
// A "--" separator at index i is dropped.
func joinArgs(c *cli.Command, i int) string {
	args := c.Args().Slice()
	if len(args) > i && args[i] == "--" {
		i++
	}
	if len(args) <= i {
		return ""
	}
	return strings.TrimSpace(strings.Join(args[i:], " "))
}

// wantsHelp reports whether a command that skips flag parsing was invoked
// with only a help flag.
func wantsHelp(c *cli.Command) bool {
	if c.NArg() != 1 {
		return false
	}
	switch c.Args().First() {
	case "-h", "--help":
		return true
	default:
		return false
	}
}
