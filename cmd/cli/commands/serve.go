package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/furnace-rank/pkg/api"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	var port, metricsPort int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rankings as JSON over HTTP",
		Long: `Serve /api/v1/scores, /api/v1/best and /api/v1/steels on --port and
/health and /metrics on --metrics-port. The trial source is read on every request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				app.Cfg.Server.Port = port
			}
			if cmd.Flags().Changed("metrics-port") {
				app.Cfg.Server.MetricsPort = metricsPort
			}
			if app.Cfg.Server.Port == app.Cfg.Server.MetricsPort {
				return fmt.Errorf("port and metrics port must differ, both are %d", app.Cfg.Server.Port)
			}

			src, closeSource, err := OpenSource(app)
			if err != nil {
				return err
			}
			defer closeSource()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			metrics := api.NewMetrics(reg)

			handler := api.NewRankingHandler(src, app.Cfg.Columns, app.Cfg.Weights, metrics, app.Logger)
			servers := []*http.Server{
				{
					Addr:              fmt.Sprintf(":%d", app.Cfg.Server.Port),
					Handler:           api.NewRouter(handler, metrics, app.Logger),
					ReadHeaderTimeout: 10 * time.Second,
				},
				{
					Addr:              fmt.Sprintf(":%d", app.Cfg.Server.MetricsPort),
					Handler:           api.NewMetricsRouter(reg),
					ReadHeaderTimeout: 10 * time.Second,
				},
			}

			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServers(ctx, servers, app.Logger)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "API port (defaults to server.port from the config)")
	cmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "Health and metrics port (defaults to server.metricsPort from the config)")

	return cmd
}

// runServers runs every server until ctx is cancelled or one of them fails, then shuts all down
func runServers(ctx context.Context, servers []*http.Server, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("Listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
