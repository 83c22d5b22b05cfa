package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"vidpeek/internal/config"
	"vidpeek/internal/downloader"
	"vidpeek/internal/observability"
	"vidpeek/internal/resolver"
	"vidpeek/internal/service"
	"vidpeek/internal/storage"
	"vidpeek/pkg/logger"
)

// app is the component graph shared by every command.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *observability.Metrics
	svc     service.Service
}

func newApp(cmd *cobra.Command, reg *prometheus.Registry) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, &ExitError{Code: ExitCLIError, Err: fmt.Errorf("config new: %w", err)}
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.App.LogLevel = level
	}

	log, err := logger.New(&logger.Options{
		AddSource: true,
		Level:     cfg.App.LogLevel,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		log.WarnContext(cmd.Context(), "logger level invalid; defaulting to info", slog.Any("error", err))
	}

	res, err := resolver.NewMock(log, cfg)
	if err != nil {
		return nil, &ExitError{Code: ExitCLIError, Err: fmt.Errorf("resolver new: %w", err)}
	}

	dl := downloader.NewMock(log, cfg)

	// commands without an HTTP surface have nothing to expose metrics on
	var metrics *observability.Metrics
	if reg != nil {
		metrics = observability.New(reg)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics,
		svc:     service.New(cfg, log, res, dl, storage.New(log, metrics), metrics),
	}, nil
}
