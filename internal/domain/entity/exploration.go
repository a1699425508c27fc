package entity

// DappStatus is the per-dApp outcome of a match.
type DappStatus struct {
	Name             string
	Explored         bool
	MatchedContracts []Address
}

// MatchResult is the outcome of matching one wallet's transactions against the registry.
type MatchResult struct {
	Wallet           Address
	TotalDapps       int
	ExploredDapps    []string
	MatchedAddresses AddressSet
	PerDapp          []DappStatus
}

// ExploredCount returns the number of explored registry entries.
func (r MatchResult) ExploredCount() int {
	return len(r.ExploredDapps)
}
