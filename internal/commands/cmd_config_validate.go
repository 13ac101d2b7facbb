package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/core/styles"
	"github.com/colonyops/tasktracker/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "task-tracker config validate [options]",
				Description: "Validates the configuration file, the data directory and the task file location.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationReport struct {
	Valid     bool              `json:"valid"`
	TasksFile string            `json:"tasks_file"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	err := cfg.ValidateDeep(cmd.flags.ConfigPath)

	report := validationReport{
		Valid:     err == nil,
		TasksFile: cfg.TasksPath(),
	}

	if err != nil {
		report.Errors = map[string]string{}

		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				report.Errors[fe.Field] = fe.Err.Error()
			}
		} else {
			report.Errors["config"] = err.Error()
		}
	}

	out := c.Root().Writer

	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(out, "%s %s\n", styles.MutedStyle.Render("tasks file:"), report.TasksFile)
		for _, field := range slices.Sorted(maps.Keys(report.Errors)) {
			_, _ = fmt.Fprintf(out, "%s %s: %s\n", styles.ErrorStyle.Render("✗"), field, report.Errors[field])
		}
		if report.Valid {
			_, _ = fmt.Fprintln(out, styles.SuccessStyle.Render("✓ Configuration is valid"))
		}
	}

	if !report.Valid {
		return fmt.Errorf("%d configuration error(s) found", len(report.Errors))
	}

	return nil
}
