package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/metalagman/tasker/internal/app"
	"github.com/metalagman/tasker/internal/output"
	"github.com/metalagman/tasker/internal/task"
	"github.com/spf13/cobra"
)

func addCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				added, err := a.Store.Add(ctx, description)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task added! %s\n", added)
				return nil
			})
		},
	}
}

func listCmd(opts *rootOptions) *cobra.Command {
	var markdown bool
	var style string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(_ context.Context, a *app.App) error {
				items := a.Store.List()
				if !markdown {
					return output.WriteList(cmd.OutOrStdout(), items)
				}
				rendered, err := output.RenderMarkdown(items, style)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render the list as a markdown table")
	cmd.Flags().StringVar(&style, "style", "", "glamour style for --markdown (dark, light, notty); default picks from the terminal")
	return cmd
}

func doneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete"},
		Short:   "Mark a task as completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := task.ParseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				if _, err := a.Store.Complete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d completed.\n", id)
				return nil
			})
		},
	}
}

func rmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := task.ParseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				removed, err := a.Store.Delete(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' deleted.\n", removed.Description)
				return nil
			})
		},
	}
}
