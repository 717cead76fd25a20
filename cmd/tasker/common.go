package main

import (
	"context"
	"os"
	"strings"

	"github.com/metalagman/tasker/internal/app"
	"github.com/metalagman/tasker/internal/config"
	"github.com/metalagman/tasker/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (o *rootOptions) workDir() (string, error) {
	if o.dir != "" {
		return o.dir, nil
	}
	return os.Getwd()
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	baseDir, err := opts.workDir()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.v, baseDir)
	if err != nil {
		return config.Config{}, err
	}
	if backend := strings.TrimSpace(opts.backend); backend != "" && !strings.EqualFold(backend, cfg.Storage.Backend) {
		cfg.Storage.Backend = backend
		cfg.Storage.Path = ""
	}
	if opts.file != "" {
		cfg.Storage.Path = opts.file
	}
	if err := cfg.Normalize(baseDir); err != nil {
		return config.Config{}, err
	}
	if cfg.Log.Debug && !opts.debug {
		logging.Init(true)
	}
	return cfg, nil
}

// withApp loads config, starts the application and runs fn with it.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := app.Start(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Stop(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("stop app")
		}
	}()
	return fn(ctx, a)
}
