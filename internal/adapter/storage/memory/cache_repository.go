package memory

import (
	"context"
	"fmt"
	"time"

	"dappscope/internal/config"
	"dappscope/internal/domain/entity"
	domainRepo "dappscope/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

// Cache keys
const registryKeyPrefix = "registry_dapps_"

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
type CacheRepository struct {
	cache  *cache.Cache
	logger *zap.Logger
	cfg    config.CacheConfig
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.GetDefaultExpiration()
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for memory storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:  c,
		logger: logger.Named("MemoryCacheStorage"),
		cfg:    cfg,
	}
}

// GetDapps retrieves the cached registry for source, returning found status.
func (r *CacheRepository) GetDapps(_ context.Context, source string) ([]entity.Dapp, bool, error) {
	key := registryKeyPrefix + source
	if x, found := r.cache.Get(key); found {
		if dapps, ok := x.([]entity.Dapp); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", key))
			return dapps, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", key), zap.String("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", key))
	return nil, false, nil
}

// SetDapps caches the registry for source. A non-positive ttl falls back to the default expiration.
func (r *CacheRepository) SetDapps(_ context.Context, source string, dapps []entity.Dapp, ttl time.Duration) error {
	key := registryKeyPrefix + source
	if ttl <= 0 {
		ttl = r.cfg.GetDefaultExpiration()
	}
	r.cache.Set(key, dapps, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}
