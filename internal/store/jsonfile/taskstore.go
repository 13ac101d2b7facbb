// Package jsonfile implements task persistence backed by a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/colonyops/tasktracker/internal/core/task"
)

// TaskStore implements task.Store using a JSON array on disk. Every save
// rewrites the whole file.
type TaskStore struct {
	path string
	mu   sync.RWMutex
}

// NewTaskStore creates a new JSON file task store at the given path.
func NewTaskStore(path string) *TaskStore {
	return &TaskStore{path: path}
}

// Path returns the file backing the store.
func (s *TaskStore) Path() string {
	return s.path
}

// LoadAll returns all tasks in file order.
func (s *TaskStore) LoadAll(ctx context.Context) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

// SaveAll overwrites the file with tasks.
func (s *TaskStore) SaveAll(ctx context.Context, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(tasks); err != nil {
		return fmt.Errorf("%w: %s: %w", task.ErrWrite, s.path, err)
	}
	return nil
}

// Quarantine moves a corrupt task file aside so that the next save does
// not overwrite it. Returns the backup path, or "" if there was no file.
func (s *TaskStore) Quarantine() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := time.Now().Format("20060102-150405")
	backupPath := fmt.Sprintf("%s.corrupt.%s", s.path, timestamp)

	if err := os.Rename(s.path, backupPath); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("backup corrupted task file: %w", err)
	}

	return backupPath, nil
}

// load reads the task file from disk.
// Returns an empty slice if the file doesn't exist or is empty.
func (s *TaskStore) load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", task.ErrRead, s.path, err)
	}

	if len(data) == 0 {
		return []task.Task{}, nil
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", task.ErrCorrupt, s.path, err)
	}

	if tasks == nil {
		tasks = []task.Task{}
	}

	return tasks, nil
}

// save writes the task file to disk atomically.
func (s *TaskStore) save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
