// Package sqlstore persists tasks in the SQLite database opened by package db.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/metalagman/tasker/internal/task"
	"github.com/rs/zerolog/log"
)

// Backend stores the task sequence in the tasks table, ordered by position.
type Backend struct {
	db *sql.DB
}

// New creates a backend over an already migrated database.
func New(db *sql.DB) *Backend {
	return &Backend{db: db}
}

// Load returns all tasks in listing order.
func (b *Backend) Load(ctx context.Context) ([]task.Task, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT id, description, completed FROM tasks ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query tasks: %w", task.ErrPersistence, err)
	}
	defer rows.Close()
	out := []task.Task{}
	for rows.Next() {
		var t task.Task
		var completed int
		if err := rows.Scan(&t.ID, &t.Description, &completed); err != nil {
			return nil, fmt.Errorf("%w: scan task: %w", task.ErrPersistence, err)
		}
		t.Completed = completed != 0
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tasks: %w", task.ErrPersistence, err)
	}
	log.Debug().Int("count", len(out)).Msg("tasks loaded from sqlite")
	return out, nil
}

// Save replaces every row with tasks in one transaction.
func (b *Backend) Save(ctx context.Context, tasks []task.Task) error {
	tx, err := b.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin save: %w", task.ErrPersistence, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: clear tasks: %w", task.ErrPersistence, err)
	}
	for i, t := range tasks {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(id, description, completed, position) VALUES(?, ?, ?, ?)`,
			t.ID, t.Description, boolToInt(t.Completed), i); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: insert task %d: %w", task.ErrPersistence, t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit save: %w", task.ErrPersistence, err)
	}
	log.Debug().Int("count", len(tasks)).Msg("tasks saved to sqlite")
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
