package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/metalagman/tasker/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func initCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long:  "Write a default config file to the --config path (.tasker/config.yaml unless overridden).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			baseDir, err := opts.workDir()
			if err != nil {
				return err
			}
			path := config.ResolvePath(baseDir, opts.configPath)
			if _, err := os.Stat(path); err == nil && !force {
				log.Info().Str("path", path).Msg("config already exists, skipping")
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
				return nil
			}

			cfg := config.Default()
			if backend := strings.TrimSpace(opts.backend); backend != "" {
				cfg.Storage.Backend = backend
				cfg.Storage.Path = ""
			}
			if opts.file != "" {
				cfg.Storage.Path = opts.file
			}
			if err := cfg.Normalize(""); err != nil {
				return err
			}
			if err := config.Write(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tasker initialized: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
