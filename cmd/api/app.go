package main

import (
	"fmt"

	"go.uber.org/zap"

	"dappscope/internal/adapter/indexer"
	"dappscope/internal/adapter/storage/memory"
	"dappscope/internal/adapter/storage/registry"
	"dappscope/internal/application"
	"dappscope/internal/application/port"
	"dappscope/internal/config"
	"dappscope/internal/logger"
)

// app bundles the wired dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service port.ExplorerService
}

// newApp loads configuration and wires the service graph.
// logOutput overrides logger.output when non-empty.
func newApp(cfgPath, logOutput string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", cfgPath, err)
	}
	if logOutput != "" {
		cfg.Logger.Output = logOutput
	}

	log, err := logger.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Warn("Configuration incomplete, wallet checks will fail until it is fixed", zap.Error(err))
	}

	registryRepo := registry.NewRepository(cfg.Registry, log)
	cacheRepo := memory.NewCacheRepository(cfg.Cache, log)
	txRepo := indexer.NewClient(cfg.Indexer, nil, log)

	service := application.NewExplorerService(registryRepo, cacheRepo, txRepo, log, *cfg)

	return &app{cfg: cfg, logger: log, service: service}, nil
}
