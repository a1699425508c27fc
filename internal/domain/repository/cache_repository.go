package repository

import (
	"context"
	"time"

	"dappscope/internal/domain/entity"
)

// CacheRepository defines the interface for caching parsed registries between requests.
type CacheRepository interface {
	// GetDapps retrieves the cached registry loaded from source.
	GetDapps(ctx context.Context, source string) ([]entity.Dapp, bool, error)

	// SetDapps stores the registry loaded from source with a specified TTL.
	SetDapps(ctx context.Context, source string, dapps []entity.Dapp, ttl time.Duration) error
}
