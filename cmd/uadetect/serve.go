package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/devicedetector/pkg/api"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification HTTP API",
		Long: `Serve the HTTP API until SIGINT or SIGTERM:

  GET /v1/classify?ua=...   classify ua, or the request's User-Agent header
  GET /healthz              liveness
  GET /readyz               readiness, pings Redis when it backs the cache
  GET /metrics              Prometheus metrics

Examples:
  uadetect serve --addr :8080
  DETECTOR_REDIS_URL=redis://localhost:6379/0 uadetect serve --rules ./rules --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			return serve(ctx, a, api.NewServer(api.ServerConfig{Addr: cfg.HTTPAddr}, a.log))
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("watch", false, "reload rules when the rules directory changes")
	return cmd
}

// serve runs srv, and the rules watcher when enabled, until ctx is done or
// either fails.
func serve(ctx context.Context, a *app, srv *api.Server) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, handler(a))
	})
	if a.cfg.WatchRules {
		g.Go(func() error {
			return a.watch(ctx)
		})
	}
	return g.Wait()
}

func handler(a *app) http.Handler {
	return api.Router(api.RouterOptions{
		Parsers: a.parsers,
		Metrics: a.metrics.Handler(),
		Checks:  a.checks(),
		Logger:  a.log,
	})
}
