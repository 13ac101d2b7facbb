// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/tasktracker/internal/core/task"
)

// Description validates a task description is non-empty after trimming whitespace.
func Description(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

// StatusName validates a status is one of the known statuses.
func StatusName(status string) error {
	if !task.Status(status).IsValid() {
		return fmt.Errorf("unknown status %q", status)
	}
	return nil
}

// TaskFields validates the user-supplied fields of t, reporting field errors
// under the given prefix (e.g. "tasks[2]").
func TaskFields(prefix string, t task.Task) error {
	return criterio.ValidateStruct(
		criterio.Run(prefix+".description", t.Description, Description),
		criterio.Run(prefix+".status", string(t.Status), StatusName),
	)
}
