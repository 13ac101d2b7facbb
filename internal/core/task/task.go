// Package task defines the task record domain model and its persistence contract.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the on-disk and display format for task timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusNotDone    Status = "not_done"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses returns every known status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusNotDone, StatusInProgress, StatusDone}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotDone, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// ParseStatus resolves user input into a Status. Hyphenated spellings and
// "todo" are accepted as aliases.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not_done", "not-done", "todo":
		return StatusNotDone, true
	case "in_progress", "in-progress":
		return StatusInProgress, true
	case "done":
		return StatusDone, true
	default:
		return "", false
	}
}

// Task is a single unit of work.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Timestamp is a local wall-clock time serialized as "yyyy-MM-dd HH:mm:ss".
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds in local time so that values
// survive a round-trip through the file unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Local().Truncate(time.Second)}
}

// String formats the timestamp using TimestampLayout.
func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(TimestampLayout)
}

// MarshalJSON encodes the timestamp as a quoted TimestampLayout string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON accepts a TimestampLayout string in local time. An empty
// string or null leaves the zero value.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw == nil || *raw == "" {
		*ts = Timestamp{}
		return nil
	}

	t, err := time.ParseInLocation(TimestampLayout, *raw, time.Local)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", *raw, err)
	}

	ts.Time = t
	return nil
}

// Filter narrows a listing to a single status. The zero value and FilterAll
// match every task.
type Filter string

// FilterAll disables status filtering.
const FilterAll Filter = "all"

// ParseFilter resolves user input into a Filter. Empty input means all.
func ParseFilter(s string) (Filter, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, true
	}

	status, ok := ParseStatus(s)
	if !ok {
		return "", false
	}
	return Filter(status), true
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t Task) bool {
	if f == "" || f == FilterAll {
		return true
	}
	return t.Status == Status(f)
}
