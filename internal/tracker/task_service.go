package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasktracker/internal/core/logging"
	"github.com/colonyops/tasktracker/internal/core/task"
	"github.com/colonyops/tasktracker/internal/core/validate"
)

// quarantiner is implemented by stores that can move an unreadable file aside.
type quarantiner interface {
	Quarantine() (string, error)
}

// TaskService implements the task operations as full load-mutate-save cycles
// over a task.Store. Read failures degrade to an empty collection and write
// failures are logged, never returned. Only a corrupt file is moved aside; a
// file that cannot be read at all is left in place and never overwritten.
type TaskService struct {
	store task.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(store task.Store, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// All returns every task in stored order.
func (s *TaskService) All(ctx context.Context) []task.Task {
	tasks, _ := s.load(ctx)
	return tasks
}

// load reads the collection, degrading to an empty one on error. writable is
// false when a file exists that could not be read and was not moved aside;
// callers must not save over it.
func (s *TaskService) load(ctx context.Context) (tasks []task.Task, writable bool) {
	tasks, err := s.store.LoadAll(ctx)
	if err == nil {
		return tasks, true
	}

	s.log.Error().Ctx(ctx).Err(err).Msg("error reading tasks, continuing with an empty list")

	if errors.Is(err, task.ErrCorrupt) {
		if q, ok := s.store.(quarantiner); ok {
			backup, qerr := q.Quarantine()
			if qerr != nil {
				s.log.Warn().Ctx(ctx).Err(qerr).Msg("failed to move corrupt task file aside")
				return []task.Task{}, false
			}
			if backup != "" {
				s.log.Warn().Ctx(ctx).Str("backup", backup).Msg("corrupt task file moved aside")
			}
			return []task.Task{}, true
		}
	}

	return []task.Task{}, false
}

// Add appends a new not-done task and returns it.
func (s *TaskService) Add(ctx context.Context, description string) (task.Task, error) {
	if err := validate.Description(description); err != nil {
		return task.Task{}, fmt.Errorf("%w: %w", task.ErrInvalidArgument, err)
	}
	description = strings.TrimSpace(description)

	tasks, writable := s.load(ctx)
	now := task.NewTimestamp(s.now())

	created := task.Task{
		ID:          task.NextID(tasks),
		Description: description,
		Status:      task.StatusNotDone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.save(ctx, writable, append(tasks, created))
	s.log.Debug().Ctx(ctx).Int("id", created.ID).Msg("task added")

	return created, nil
}

// Update replaces the description of the task with the given id.
// Returns task.ErrNotFound without writing if no task matches.
func (s *TaskService) Update(ctx context.Context, id int, description string) (task.Task, error) {
	if err := validate.Description(description); err != nil {
		return task.Task{}, fmt.Errorf("%w: %w", task.ErrInvalidArgument, err)
	}
	description = strings.TrimSpace(description)

	return s.modify(ctx, id, func(t *task.Task) {
		t.Description = description
	})
}

// Mark sets the status of the task with the given id. Any status may be set
// from any other status.
func (s *TaskService) Mark(ctx context.Context, id int, status task.Status) (task.Task, error) {
	if !status.IsValid() {
		return task.Task{}, fmt.Errorf("%w: unknown status %q", task.ErrInvalidArgument, status)
	}

	return s.modify(ctx, id, func(t *task.Task) {
		t.Status = status
	})
}

// Delete removes the task with the given id.
// Returns task.ErrNotFound without writing if no task matches.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	ctx = logging.WithTaskID(ctx, id)
	tasks, writable := s.load(ctx)

	idx := indexOf(tasks, id)
	if idx < 0 {
		return fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	s.save(ctx, writable, slices.Delete(tasks, idx, idx+1))
	s.log.Debug().Ctx(ctx).Msg("task deleted")

	return nil
}

// List returns the tasks matching filter in stored order.
func (s *TaskService) List(ctx context.Context, filter task.Filter) []task.Task {
	tasks := s.All(ctx)

	matched := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			matched = append(matched, t)
		}
	}

	return matched
}

// Import appends items as new tasks with freshly assigned ids, keeping their
// description, status and timestamps. Missing statuses default to not_done and
// missing timestamps to now. Nothing is written if any item is invalid.
func (s *TaskService) Import(ctx context.Context, items []task.Task) ([]task.Task, error) {
	tasks, writable := s.load(ctx)
	now := task.NewTimestamp(s.now())
	next := task.NextID(tasks)

	imported := make([]task.Task, 0, len(items))
	for i, item := range items {
		if item.Status == "" {
			item.Status = task.StatusNotDone
		}
		if err := validate.TaskFields(fmt.Sprintf("tasks[%d]", i), item); err != nil {
			return nil, fmt.Errorf("%w: %w", task.ErrInvalidArgument, err)
		}
		item.Description = strings.TrimSpace(item.Description)

		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if item.UpdatedAt.Before(item.CreatedAt.Time) {
			item.UpdatedAt = item.CreatedAt
		}

		item.ID = next
		next++
		imported = append(imported, item)
	}

	if len(imported) == 0 {
		return imported, nil
	}

	s.save(ctx, writable, append(tasks, imported...))
	s.log.Debug().Ctx(ctx).Int("count", len(imported)).Msg("tasks imported")

	return imported, nil
}

// Clear removes every task and returns how many were removed.
func (s *TaskService) Clear(ctx context.Context) int {
	tasks, writable := s.load(ctx)
	n := len(tasks)
	s.save(ctx, writable, []task.Task{})
	s.log.Debug().Ctx(ctx).Int("removed", n).Msg("tasks cleared")
	return n
}

// modify applies fn to a copy of the matching task, stamps UpdatedAt and
// writes the copy back in place.
func (s *TaskService) modify(ctx context.Context, id int, fn func(*task.Task)) (task.Task, error) {
	ctx = logging.WithTaskID(ctx, id)
	tasks, writable := s.load(ctx)

	idx := indexOf(tasks, id)
	if idx < 0 {
		return task.Task{}, fmt.Errorf("task %d: %w", id, task.ErrNotFound)
	}

	updated := tasks[idx]
	fn(&updated)

	updated.UpdatedAt = task.NewTimestamp(s.now())
	if updated.UpdatedAt.Before(updated.CreatedAt.Time) {
		updated.UpdatedAt = updated.CreatedAt
	}

	tasks[idx] = updated
	s.save(ctx, writable, tasks)
	s.log.Debug().Ctx(ctx).Str("status", string(updated.Status)).Msg("task modified")

	return updated, nil
}

// save persists tasks, logging instead of returning a failure. Nothing is
// written when the existing file could not be read.
func (s *TaskService) save(ctx context.Context, writable bool, tasks []task.Task) {
	if !writable {
		s.log.Error().Ctx(ctx).Int("count", len(tasks)).Msg("task file is unreadable, not saving changes")
		return
	}

	if err := s.store.SaveAll(ctx, tasks); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Int("count", len(tasks)).Msg("error saving tasks")
	}
}

func indexOf(tasks []task.Task, id int) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool {
		return t.ID == id
	})
}
