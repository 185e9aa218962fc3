package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/bnema/editable-entry/internal/adapters/http"
	chainnotify "github.com/bnema/editable-entry/internal/adapters/notify/chain"
	consolenotify "github.com/bnema/editable-entry/internal/adapters/notify/console"
	zlognotify "github.com/bnema/editable-entry/internal/adapters/notify/zlog"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			notifier := chainnotify.NewNotifier(
				consolenotify.NewNotifier(cmd.ErrOrStderr()),
				zlognotify.NewNotifier(app.logger),
			)
			server := &http.Server{
				Addr:              listen,
				Handler:           httpadapter.NewRouter(app.pageService(notifier), app.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			return runServer(ctx, server, app)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", app.config.GetString(listenKey), "Address to listen on")

	return cmd
}

func runServer(ctx context.Context, server *http.Server, app *app) error {
	errCh := make(chan error, 1)
	go func() {
		app.logger.Info().Str("addr", server.Addr).Msg("serving pages")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	return nil
}
