package http

import (
	"errors"

	"github.com/jellydator/validation"

	"dappscope/internal/domain/entity"
)

// checkRequest is the inbound payload of the check endpoint.
// Address is accepted as an alias for Wallet.
type checkRequest struct {
	Wallet  string `json:"wallet"`
	Address string `json:"address"`
}

// walletAddress returns the first supplied wallet field, normalized.
func (r checkRequest) walletAddress() string {
	if w := entity.NormalizeAddress(r.Wallet); w != "" {
		return w
	}
	return entity.NormalizeAddress(r.Address)
}

var errNotAnAddress = errors.New("must be a 0x-prefixed 20-byte hex address")

func isCanonicalAddress(value any) error {
	s, _ := value.(string)
	if s != "" && !entity.IsValidAddress(s) {
		return errNotAnAddress
	}
	return nil
}

// Validate checks the normalized wallet field.
func (r checkRequest) Validate() error {
	wallet := r.walletAddress()
	return validation.Validate(wallet,
		validation.Required,
		validation.By(isCanonicalAddress),
	)
}
