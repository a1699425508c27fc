package entity

// UnnamedDapp is used when a registry entry carries neither a name nor a title.
const UnnamedDapp = "Unnamed dApp"

// Dapp is one registry entry with its contracts flattened into a canonical set.
type Dapp struct {
	Name      string
	Logo      string
	Website   string
	Contracts AddressSet
}

// AllContracts returns the union of every dApp's contracts.
func AllContracts(dapps []Dapp) AddressSet {
	all := make(AddressSet)
	for _, d := range dapps {
		all.Union(d.Contracts)
	}
	return all
}
