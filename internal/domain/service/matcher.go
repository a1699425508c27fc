package service

import "dappscope/internal/domain/entity"

// Match decides which dApps the wallet has explored.
//
// A transaction counts only when its sender is the wallet and its recipient is a
// registered contract. Transactions with a missing or malformed recipient are skipped.
// ExploredDapps keeps registry order; the result does not depend on transaction order.
func Match(wallet entity.Address, dapps []entity.Dapp, txs []entity.Transaction) entity.MatchResult {
	result := entity.MatchResult{
		TotalDapps:       len(dapps),
		ExploredDapps:    []string{},
		MatchedAddresses: make(entity.AddressSet),
		PerDapp:          make([]entity.DappStatus, 0, len(dapps)),
	}

	canonical, walletOK := entity.CanonicalAddress(string(wallet))
	result.Wallet = canonical

	if walletOK {
		known := entity.AllContracts(dapps)
		for _, tx := range txs {
			from, ok := entity.CanonicalAddress(tx.From)
			if !ok || from != canonical {
				continue
			}
			to, ok := entity.CanonicalAddress(tx.To)
			if !ok || !known.Has(to) {
				continue
			}
			result.MatchedAddresses.Add(to)
		}
	}

	for _, d := range dapps {
		hits := d.Contracts.Intersect(result.MatchedAddresses).Values()
		explored := len(hits) > 0
		result.PerDapp = append(result.PerDapp, entity.DappStatus{
			Name:             d.Name,
			Explored:         explored,
			MatchedContracts: hits,
		})
		if explored {
			result.ExploredDapps = append(result.ExploredDapps, d.Name)
		}
	}

	return result
}
