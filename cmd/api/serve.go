package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	delivery "dappscope/internal/adapter/delivery/http"
	handler "dappscope/internal/adapter/handler/http"
	"dappscope/internal/observability/metrics"
)

func runServe(parent context.Context, cfgPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfgPath, "")
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck
	a.logger.Info("Logger initialized", zap.Any("config", a.cfg.Logger))

	metrics.Init(a.cfg.Metrics.Enabled, a.cfg.App.Name)

	a.logger.Info("Setting up HTTP router...")
	r := router.New()
	delivery.RegisterRoutes(r, handler.NewExplorerHandler(a.service, a.logger), a.logger)

	server := &fasthttp.Server{
		Handler: delivery.Chain(r.Handler,
			delivery.RequestID(),
			delivery.CORS(a.cfg.CORS),
			delivery.Logging(a.logger),
			delivery.Metrics(),
		),
		Name:         a.cfg.App.Name,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	serverAddr := ":" + a.cfg.Server.Port
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("address", serverAddr))
		errCh <- server.ListenAndServe(serverAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
