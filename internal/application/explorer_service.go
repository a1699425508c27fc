package application

import (
	"context"
	"fmt"

	"dappscope/internal/application/port"
	"dappscope/internal/config"
	"dappscope/internal/domain"
	"dappscope/internal/domain/entity"
	domainRepo "dappscope/internal/domain/repository"
	domainService "dappscope/internal/domain/service"
	"dappscope/internal/observability/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compile-time check to ensure explorerService implements ExplorerService
var _ port.ExplorerService = (*explorerService)(nil)

// explorerService implements the port.ExplorerService interface orchestrating registry and indexer reads.
type explorerService struct {
	registryRepo domainRepo.RegistryRepository
	cacheRepo    domainRepo.CacheRepository
	txRepo       domainRepo.TransactionRepository
	logger       *zap.Logger
	cfg          config.Config
}

// NewExplorerService creates a new instance of the explorer service.
// cacheRepo may be nil; registry caching is also off when registry.cache_ttl is zero.
func NewExplorerService(
	registryRepo domainRepo.RegistryRepository,
	cacheRepo domainRepo.CacheRepository,
	txRepo domainRepo.TransactionRepository,
	logger *zap.Logger,
	cfg config.Config,
) port.ExplorerService {
	return &explorerService{
		registryRepo: registryRepo,
		cacheRepo:    cacheRepo,
		txRepo:       txRepo,
		logger:       logger.Named("ExplorerService"),
		cfg:          cfg,
	}
}

// Ready returns the first missing required setting wrapped in domain.ErrConfiguration.
func (s *explorerService) Ready() error {
	return s.cfg.Validate()
}

// Explore validates configuration and the wallet, then loads the registry and the
// wallet's transactions concurrently and matches them. Any failure fails the whole call.
func (s *explorerService) Explore(ctx context.Context, rawWallet string) (entity.MatchResult, error) {
	if err := s.Ready(); err != nil {
		metrics.RecordExploration("config_error", 0)
		return entity.MatchResult{}, err
	}

	wallet, ok := entity.CanonicalAddress(rawWallet)
	if !ok {
		metrics.RecordExploration("invalid_wallet", 0)
		return entity.MatchResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidWallet, rawWallet)
	}

	var (
		dapps []entity.Dapp
		txs   []entity.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dapps, err = s.loadDapps(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.txRepo.FetchAll(gctx, wallet, domainRepo.FetchOptions{
			MaxPages: s.cfg.Indexer.GetMaxPages(),
			PageSize: s.cfg.Indexer.GetPageSize(),
		})
		if err != nil {
			return fmt.Errorf("failed to fetch transactions for %s: %w", wallet, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.RecordExploration("error", 0)
		return entity.MatchResult{}, err
	}

	result := domainService.Match(wallet, dapps, txs)
	metrics.RecordExploration("success", result.ExploredCount())
	s.logger.Info("Wallet exploration checked",
		zap.String("wallet", wallet.String()),
		zap.Int("transactions", len(txs)),
		zap.Int("totalDapps", result.TotalDapps),
		zap.Int("exploredCount", result.ExploredCount()),
	)

	return result, nil
}

// ListDapps returns the registry, using the cache when enabled.
func (s *explorerService) ListDapps(ctx context.Context) ([]entity.Dapp, error) {
	if err := s.cfg.Registry.Validate(); err != nil {
		return nil, err
	}
	return s.loadDapps(ctx)
}

// loadDapps retrieves the registry, prioritizing cache, and falls back to the repository.
func (s *explorerService) loadDapps(ctx context.Context) ([]entity.Dapp, error) {
	source := s.cfg.Registry.URL
	ttl := s.cfg.Registry.CacheTTL
	useCache := s.cacheRepo != nil && ttl > 0

	if useCache {
		cached, found, err := s.cacheRepo.GetDapps(ctx, source)
		if err != nil {
			s.logger.Warn("Cache error when getting registry", zap.Error(err))
		}
		if found {
			metrics.RecordRegistryLoad("cache", "success")
			return cached, nil
		}
	}

	dapps, err := s.registryRepo.LoadDapps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	if useCache {
		if err := s.cacheRepo.SetDapps(ctx, source, dapps, ttl); err != nil {
			s.logger.Error("Failed to cache registry", zap.Error(err))
		}
	}
	return dapps, nil
}
