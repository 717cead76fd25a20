package main

import (
	"context"

	"github.com/metalagman/tasker/internal/app"
	"github.com/metalagman/tasker/internal/ui"
	"github.com/spf13/cobra"
)

func menuCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts)
		},
	}
}

func runMenu(cmd *cobra.Command, opts *rootOptions) error {
	return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
		return ui.Run(ctx, a.Store, cmd.InOrStdin(), cmd.OutOrStdout())
	})
}
