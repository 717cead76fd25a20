package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/metalagman/tasker/internal/app"
	"github.com/metalagman/tasker/internal/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func uiCmd(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app.App) error {
				server, err := web.NewServer(a.Store)
				if err != nil {
					return err
				}
				srv := &http.Server{
					Addr:              fmt.Sprintf("localhost:%d", port),
					Handler:           server.Routes(),
					ReadHeaderTimeout: 5 * time.Second,
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Starting UI on http://%s\n", srv.Addr)
				return serve(ctx, srv)
			})
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	return cmd
}

// serve runs srv until ctx is done or the listener fails. It returns only
// after the shutdown watcher has exited.
func serve(ctx context.Context, srv *http.Server) error {
	served := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		select {
		case <-served:
			return
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown web UI")
		}
	}()

	err := srv.ListenAndServe()
	close(served)
	<-watcherDone
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve web UI: %w", err)
	}
	return nil
}
