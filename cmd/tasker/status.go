package main

import (
	"context"
	"fmt"

	"github.com/metalagman/tasker/internal/app"
	"github.com/spf13/cobra"
)

func statusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where tasks are stored and how many there are",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(_ context.Context, a *app.App) error {
				items := a.Store.List()
				completed := 0
				for _, t := range items {
					if t.Completed {
						completed++
					}
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "backend:  %s\n", a.Config.Storage.Backend)
				fmt.Fprintf(out, "path:     %s\n", a.Config.Storage.Path)
				fmt.Fprintf(out, "tasks:    %d (%d completed, %d pending)\n", len(items), completed, len(items)-completed)
				fmt.Fprintf(out, "next id:  %d\n", a.Store.NextID())
				return nil
			})
		},
	}
}
