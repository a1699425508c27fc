package repository

import (
	"context"

	"dappscope/internal/domain/entity"
)

// RegistryRepository defines the interface for loading the dApp registry.
type RegistryRepository interface {
	// LoadDapps fetches the registry document and returns its entries in document order.
	LoadDapps(ctx context.Context) ([]entity.Dapp, error)
}
