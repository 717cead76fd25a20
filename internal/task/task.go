// Package task provides the task list: the ordered collection, id assignment
// and the persistence contract its backends implement.
package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput reports a rejected argument (empty description, bad id).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound reports an operation on an id no task has.
	ErrNotFound = errors.New("task not found")
	// ErrPersistence reports a backing store that could not be read or written.
	ErrPersistence = errors.New("persistence failure")
)

// Task describes a single to-do item.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// String returns a one-line human description of the task.
func (t Task) String() string {
	status := "Pending"
	if t.Completed {
		status = "Completed"
	}
	return fmt.Sprintf("Task ID: %d, Description: %s, Status: %s", t.ID, t.Description, status)
}

// Backend persists the full task sequence.
//
// Load returns an empty slice and a nil error when the backing store does not
// exist yet. Save replaces the whole store with tasks, in order.
type Backend interface {
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, tasks []Task) error
}

// ParseID converts user input into a task id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", ErrInvalidInput, raw)
	}
	return id, nil
}
