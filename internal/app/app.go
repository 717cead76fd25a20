// Package app wires configuration, the task backend and the task store.
package app

import (
	"context"
	"fmt"

	"github.com/metalagman/tasker/internal/config"
	"github.com/metalagman/tasker/internal/db"
	"github.com/metalagman/tasker/internal/task"
	"github.com/metalagman/tasker/internal/task/jsonfile"
	"github.com/metalagman/tasker/internal/task/sqlstore"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// App is a started application holding a loaded task store.
type App struct {
	Config config.Config
	Store  *task.Store

	fx *fx.App
}

// Module provides the task backend and store for cfg.
func Module(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(NewBackend, NewStore),
	)
}

// NewBackend selects the backend named by the storage config. The SQLite
// handle is closed when the application stops.
func NewBackend(lc fx.Lifecycle, cfg config.Config) (task.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		return jsonfile.New(cfg.Storage.Path), nil
	case config.BackendSQLite:
		database, err := db.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return database.Close()
			},
		})
		return sqlstore.New(database), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// NewStore creates the task store; its tasks are loaded on start.
func NewStore(lc fx.Lifecycle, backend task.Backend) *task.Store {
	store := task.NewStore(backend)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.Load(ctx)
		},
	})
	return store
}

// Start builds the application for cfg and loads the task store.
func Start(ctx context.Context, cfg config.Config, opts ...fx.Option) (*App, error) {
	a := &App{Config: cfg}
	opts = append([]fx.Option{Module(cfg), fx.NopLogger, fx.Populate(&a.Store)}, opts...)
	a.fx = fx.New(opts...)
	if err := a.fx.Err(); err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	if err := a.fx.Start(ctx); err != nil {
		return nil, fmt.Errorf("start app: %w", err)
	}
	log.Debug().Str("backend", cfg.Storage.Backend).Str("path", cfg.Storage.Path).Msg("task store ready")
	return a, nil
}

// Stop releases the backend.
func (a *App) Stop(ctx context.Context) error {
	return a.fx.Stop(ctx)
}
