package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/app"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/config"
)

func main() {
	ctx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	addr := ":" + cfg.Port

	loadCtx, loadCancel := context.WithTimeout(ctx, 30*time.Second)
	appConfig, err := app.SetAppConfig(loadCtx, cfg, logger)
	loadCancel()
	if err != nil {
		logger.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer appConfig.Close(logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           appConfig.Router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("initiating graceful shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown error", "error", err)
		}
		rootCancel()
		close(idleConnsClosed)
	}()

	logger.Info("starting server", "address", addr, "data_source", cfg.DataSource)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	<-idleConnsClosed
	logger.Info("server stopped")
}
