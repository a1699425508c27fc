package entity

// Transaction is the subset of an indexer transaction record used for matching.
// From and To hold the upstream strings as received; To is empty for contract creations.
type Transaction struct {
	Hash string
	From string
	To   string
}
