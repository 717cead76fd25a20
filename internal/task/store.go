package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

// Store manages the in-memory task list and writes it through a Backend after
// every mutation.
//
// A mutation only becomes visible once Save succeeded, so a failing backend
// never leaves memory ahead of disk. Store is not safe for concurrent use.
type Store struct {
	backend Backend
	tasks   []Task
	nextID  int64
}

// NewStore creates an empty store on top of backend. Call Load to read the
// persisted tasks.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, nextID: 1}
}

// Open creates a store and loads its tasks from backend.
func Open(ctx context.Context, backend Backend) (*Store, error) {
	s := NewStore(backend)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory state with the persisted tasks.
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.backend.Load(ctx)
	if err != nil {
		return persistenceError("load tasks", err)
	}
	nextID, err := checkLoaded(tasks)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	s.tasks = tasks
	s.nextID = nextID
	log.Debug().Int("count", len(tasks)).Int64("next_id", nextID).Msg("tasks loaded")
	return nil
}

// Add creates a pending task with the next id.
func (s *Store) Add(ctx context.Context, description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if s.nextID == math.MaxInt64 {
		return Task{}, fmt.Errorf("%w: task ids exhausted", ErrPersistence)
	}
	t := Task{ID: s.nextID, Description: description}
	next := append(slices.Clone(s.tasks), t)
	if err := s.commit(ctx, next, s.nextID+1); err != nil {
		return Task{}, err
	}
	log.Debug().Int64("task_id", t.ID).Msg("task added")
	return t, nil
}

// List returns all tasks in insertion order.
func (s *Store) List() []Task {
	out := slices.Clone(s.tasks)
	if out == nil {
		out = []Task{}
	}
	return out
}

// Get returns the task with id.
func (s *Store) Get(id int64) (Task, error) {
	i, err := s.index(id)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// Complete marks the task with id as completed. Completing an already
// completed task is not an error.
func (s *Store) Complete(ctx context.Context, id int64) (Task, error) {
	i, err := s.index(id)
	if err != nil {
		return Task{}, err
	}
	next := slices.Clone(s.tasks)
	next[i].Completed = true
	if err := s.commit(ctx, next, s.nextID); err != nil {
		return Task{}, err
	}
	log.Debug().Int64("task_id", id).Msg("task completed")
	return next[i], nil
}

// Delete removes the task with id and returns it.
func (s *Store) Delete(ctx context.Context, id int64) (Task, error) {
	i, err := s.index(id)
	if err != nil {
		return Task{}, err
	}
	removed := s.tasks[i]
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	if err := s.commit(ctx, next, s.nextID); err != nil {
		return Task{}, err
	}
	log.Debug().Int64("task_id", id).Msg("task deleted")
	return removed, nil
}

// NextID returns the id the next added task will receive.
func (s *Store) NextID() int64 {
	return s.nextID
}

func (s *Store) index(id int64) (int, error) {
	if id <= 0 {
		return -1, fmt.Errorf("%w: invalid task id %d", ErrInvalidInput, id)
	}
	i := slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return i, nil
}

func (s *Store) commit(ctx context.Context, tasks []Task, nextID int64) error {
	if err := s.backend.Save(ctx, tasks); err != nil {
		return persistenceError("save tasks", err)
	}
	s.tasks = tasks
	s.nextID = nextID
	return nil
}

// checkLoaded rejects sequences that break the id invariants and returns the
// next id: one past the highest id, or 1 when empty.
func checkLoaded(tasks []Task) (int64, error) {
	seen := make(map[int64]struct{}, len(tasks))
	var maxID int64
	for _, t := range tasks {
		if t.ID <= 0 {
			return 0, fmt.Errorf("%w: task id %d is not positive", ErrPersistence, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return 0, fmt.Errorf("%w: duplicate task id %d", ErrPersistence, t.ID)
		}
		if strings.TrimSpace(t.Description) == "" {
			return 0, fmt.Errorf("%w: task %d has an empty description", ErrPersistence, t.ID)
		}
		if t.ID == math.MaxInt64 {
			return 0, fmt.Errorf("%w: task id %d leaves no next id", ErrPersistence, t.ID)
		}
		seen[t.ID] = struct{}{}
		maxID = max(maxID, t.ID)
	}
	return maxID + 1, nil
}

func persistenceError(op string, err error) error {
	if errors.Is(err, ErrPersistence) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
