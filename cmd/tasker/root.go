// Package main provides the entry point for the tasker CLI.
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/metalagman/tasker/internal/config"
	"github.com/metalagman/tasker/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOptions struct {
	configPath string
	debug      bool
	file       string
	backend    string

	// dir overrides the working directory config and data paths resolve against.
	dir string
	v   *viper.Viper
}

func newRootCmd(opts *rootOptions) (*cobra.Command, error) {
	if opts.v == nil {
		opts.v = viper.New()
	}
	cmd := &cobra.Command{
		Use:   "tasker",
		Short: "tasker is a minimal task list manager",
		Long: "tasker keeps a single-user task list in a local file.\n" +
			"Run without a command to open the interactive menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Init(opts.debug)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "config file path")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.file, "file", "", "backing store path (overrides storage.path)")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: json or sqlite (overrides storage.backend)")
	if err := opts.v.BindPFlag("config", flags.Lookup("config")); err != nil {
		return nil, fmt.Errorf("bind config flag: %w", err)
	}

	cmd.AddCommand(addCmd(opts))
	cmd.AddCommand(listCmd(opts))
	cmd.AddCommand(doneCmd(opts))
	cmd.AddCommand(rmCmd(opts))
	cmd.AddCommand(menuCmd(opts))
	cmd.AddCommand(initCmd(opts))
	cmd.AddCommand(statusCmd(opts))
	cmd.AddCommand(uiCmd(opts))
	return cmd, nil
}

// run executes the root command with args and returns the process exit code.
// Command output goes to stdout; errors are reported on stderr.
func run(ctx context.Context, opts *rootOptions, args []string, stdout, stderr io.Writer) int {
	cmd, err := newRootCmd(opts)
	if err != nil {
		fatal(stderr, err)
		return 1
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fatal(stderr, err)
		return 1
	}
	return 0
}

func fatal(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
}
