package port

import (
	"context"

	"dappscope/internal/domain/entity"
)

// ExplorerService defines the interface for the wallet exploration use cases.
type ExplorerService interface {
	// Ready reports whether the settings required for wallet checks are present.
	Ready() error

	// Explore reports which registry dApps the wallet has sent transactions to.
	Explore(ctx context.Context, wallet string) (entity.MatchResult, error)

	// ListDapps returns the parsed registry in document order.
	ListDapps(ctx context.Context) ([]entity.Dapp, error)
}
