package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schedules.onebusaway.org/internal/app"
	"schedules.onebusaway.org/internal/appconf"
	"schedules.onebusaway.org/internal/gtfs"
	"schedules.onebusaway.org/internal/logging"
	"schedules.onebusaway.org/internal/restapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, gtfsCfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := logging.NewLogger(os.Stdout, level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	application, err := buildApplication(cfg, gtfsCfg, logger)
	if err != nil {
		logging.LogError(logger, "failed to load schedule data", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		logging.LogError(logger, "failed to listen", err, slog.Int("port", cfg.Port))
		os.Exit(1)
	}

	if err := serve(ctx, application, listener); err != nil {
		logging.LogError(logger, "server stopped with error", err)
		os.Exit(1)
	}
}

// buildApplication loads the store exactly once. Handlers only ever see the
// finished store.
func buildApplication(cfg appconf.Config, gtfsCfg gtfs.Config, logger *slog.Logger) (*app.Application, error) {
	store, err := gtfs.LoadStore(gtfsCfg, logger)
	if err != nil {
		return nil, err
	}

	return &app.Application{
		Config:     cfg,
		GtfsConfig: gtfsCfg,
		Logger:     logger,
		Store:      store,
	}, nil
}

func newServer(api *restapi.RestAPI, logger *slog.Logger) *http.Server {
	return &http.Server{
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// serve runs the API on listener until ctx is cancelled, then drains
// in-flight requests.
func serve(ctx context.Context, application *app.Application, listener net.Listener) error {
	logger := application.Logger
	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := newServer(api, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", listener.Addr().String(),
			"env", application.Config.Env.String(),
			"api_keys_required", application.APIKeysRequired())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server shut down")
	return nil
}
