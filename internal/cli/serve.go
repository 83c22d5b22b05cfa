package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	httprouter "vidpeek/internal/infrastructure/delivery/http"
	httpserver "vidpeek/pkg/http/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve the downloader page and JSON API (default)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	bindServeFlags(cmd.Flags())

	return cmd
}

func bindServeFlags(fs *pflag.FlagSet) {
	fs.String("addr", "", "Listen address (overrides VIDPEEK_HTTP_PORT)")
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := newApp(cmd, reg)
	if err != nil {
		return err
	}

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		a.cfg.HTTP.Port = addr
	}

	go a.svc.CleanupExpired(ctx, a.cfg.Transfer.CleanupInterval)

	router, err := httprouter.New(a.log, a.cfg, a.svc, a.metrics)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("router new: %w", err)}
	}

	srv, err := httpserver.New(router, httpserver.Options{
		Addr:            a.cfg.HTTP.Port,
		ShutdownTimeout: a.cfg.HTTP.ShutdownTimeout,
	})
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("http server new: %w", err)}
	}

	a.log.InfoContext(ctx, "vidpeek started", slog.String("addr", srv.Addr()))

	var serveErr error

	select {
	case <-ctx.Done():
	case serveErr = <-srv.Notify():
		a.log.ErrorContext(ctx, "http server", slog.Any("error", serveErr))
	}

	if err := srv.Shutdown(); err != nil {
		a.log.ErrorContext(ctx, "http server shutdown", slog.Any("error", err))
	}

	// transfers run detached from any request; let them finish
	a.svc.Close()

	a.log.InfoContext(ctx, "vidpeek shut down gracefully")

	if serveErr != nil {
		return &ExitError{Code: ExitCLIError, Err: serveErr}
	}

	return nil
}
