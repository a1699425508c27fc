package repository

import (
	"context"

	"dappscope/internal/domain/entity"
)

// FetchOptions bounds a paginated transaction fetch.
type FetchOptions struct {
	MaxPages int
	PageSize int
}

// TransactionRepository defines the interface for reading a wallet's transaction history.
type TransactionRepository interface {
	// FetchAll walks the wallet's transaction pages until a stop condition is reached.
	FetchAll(ctx context.Context, wallet entity.Address, opts FetchOptions) ([]entity.Transaction, error)
}
