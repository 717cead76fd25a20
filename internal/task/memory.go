package task

import (
	"context"
	"slices"
)

// MemoryBackend keeps the saved sequence in memory. It backs tests and
// callers that do not need durability.
type MemoryBackend struct {
	tasks []Task
	saves int

	// LoadErr, when set, is returned by Load.
	LoadErr error
	// SaveErr, when set, is returned by Save and nothing is stored.
	SaveErr error
}

// NewMemoryBackend returns a backend preloaded with tasks.
func NewMemoryBackend(tasks ...Task) *MemoryBackend {
	return &MemoryBackend{tasks: slices.Clone(tasks)}
}

// Load returns a copy of the stored tasks.
func (b *MemoryBackend) Load(_ context.Context) ([]Task, error) {
	if b.LoadErr != nil {
		return nil, b.LoadErr
	}
	out := slices.Clone(b.tasks)
	if out == nil {
		out = []Task{}
	}
	return out, nil
}

// Save stores a copy of tasks.
func (b *MemoryBackend) Save(_ context.Context, tasks []Task) error {
	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.tasks = slices.Clone(tasks)
	b.saves++
	return nil
}

// Tasks returns what was last saved.
func (b *MemoryBackend) Tasks() []Task {
	return slices.Clone(b.tasks)
}

// Saves reports how many successful saves happened.
func (b *MemoryBackend) Saves() int {
	return b.saves
}
