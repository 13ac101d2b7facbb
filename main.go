package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasktracker/internal/commands"
	"github.com/colonyops/tasktracker/internal/core/config"
	"github.com/colonyops/tasktracker/internal/core/logging"
	"github.com/colonyops/tasktracker/internal/core/styles"
	"github.com/colonyops/tasktracker/internal/store/jsonfile"
	"github.com/colonyops/tasktracker/internal/tracker"
	"github.com/colonyops/tasktracker/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back to
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// newRootCmd builds the CLI. Command output and error messages go to out.
func newRootCmd(out io.Writer) *cli.Command {
	var (
		logCloser  func()
		trackerApp = &tracker.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "task-tracker",
		Usage:     "Track tasks from the command line",
		UsageText: "task-tracker [global options] command [arguments]",
		Description: `Task Tracker keeps a list of tasks in a local JSON file.

Tasks move between not_done, in_progress and done. Every command reads the
whole file, applies its change and writes the whole file back.

Run 'task-tracker help' for the list of commands.`,
		Version:               build(),
		Writer:                out,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASK_TRACKER_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs go to stderr when unset)",
				Sources:     cli.EnvVars("TASK_TRACKER_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (.yaml or .toml)",
				Sources:     cli.EnvVars("TASK_TRACKER_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASK_TRACKER_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "tasks-file",
				Usage:       "path to the task file (overrides tasks_file from config)",
				Sources:     cli.EnvVars("TASK_TRACKER_FILE"),
				Destination: &flags.TasksFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			load := config.Load
			if skipsConfigValidation(c.Args().First()) {
				load = config.Read
			}

			cfg, err := load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.TasksFile != "" {
				path, err := filepath.Abs(flags.TasksFile)
				if err != nil {
					return ctx, fmt.Errorf("resolve task file: %w", err)
				}
				cfg.TasksFile = path
			}

			if palette, ok := styles.GetPalette(cfg.Theme); ok {
				styles.SetTheme(palette)
			}

			store := jsonfile.NewTaskStore(cfg.TasksPath())
			tasks := tracker.NewTaskService(store, logging.Component("tracker"))

			flags.Config = cfg

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*trackerApp = *tracker.NewApp(tasks, cfg)

			log.Debug().Str("tasks_file", store.Path()).Msg("task store ready")

			return logging.WithCommand(ctx, c.Args().First()), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewAddCmd(flags, trackerApp).Register(app)
	app = commands.NewUpdateCmd(flags, trackerApp).Register(app)
	app = commands.NewDeleteCmd(flags, trackerApp).Register(app)
	app = commands.NewMarkCmd(flags, trackerApp).Register(app)
	app = commands.NewListCmd(flags, trackerApp).Register(app)
	app = commands.NewClearCmd(flags, trackerApp).Register(app)
	app = commands.NewImportCmd(flags, trackerApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Use 'help' for usage information", c.Args().First())
		}
		_, _ = fmt.Fprintln(c.Root().Writer, "Please provide a command. Use 'help' for usage information.")
		return nil
	}

	return app
}

// skipsConfigValidation reports whether command runs with an unvalidated
// config, so help stays usable and config validate can report the errors.
func skipsConfigValidation(command string) bool {
	switch command {
	case "", "help", "h", "config":
		return true
	default:
		return false
	}
}

func main() {
	ctx := context.Background()

	app := newRootCmd(os.Stdout)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
