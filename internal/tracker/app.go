// Package tracker holds the task operations and the application container
// consumed by the CLI commands.
package tracker

import (
	"github.com/colonyops/tasktracker/internal/core/config"
)

// App is the central entry point for all task-tracker operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *TaskService
	Config *config.Config
}

// NewApp constructs an App from explicit dependencies.
func NewApp(tasks *TaskService, cfg *config.Config) *App {
	return &App{
		Tasks:  tasks,
		Config: cfg,
	}
}
