package entity

import (
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is a canonical EVM account address: "0x" followed by 40 lowercase hex digits.
type Address string

// NormalizeAddress trims surrounding whitespace and lowercases the input.
func NormalizeAddress(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidAddress reports whether s is already in canonical address form.
func IsValidAddress(s string) bool {
	if len(s) != 2+2*common.AddressLength || !strings.HasPrefix(s, "0x") {
		return false
	}
	if strings.ToLower(s) != s {
		return false
	}
	return common.IsHexAddress(s)
}

// CanonicalAddress normalizes raw and returns it as an Address when the result is valid.
func CanonicalAddress(raw string) (Address, bool) {
	s := NormalizeAddress(raw)
	if !IsValidAddress(s) {
		return "", false
	}
	return Address(s), true
}

// String returns the canonical lowercase form.
func (a Address) String() string {
	return string(a)
}

// Checksum returns the EIP-55 mixed-case representation, for display only.
func (a Address) Checksum() string {
	return common.HexToAddress(string(a)).Hex()
}

// AddressSet is an unordered set of canonical addresses.
type AddressSet map[Address]struct{}

// NewAddressSet builds a set from the given addresses.
func NewAddressSet(addrs ...Address) AddressSet {
	s := make(AddressSet, len(addrs))
	for _, a := range addrs {
		s.Add(a)
	}
	return s
}

// Add inserts a into the set.
func (s AddressSet) Add(a Address) {
	s[a] = struct{}{}
}

// Has reports whether a is a member.
func (s AddressSet) Has(a Address) bool {
	_, ok := s[a]
	return ok
}

// Len returns the number of members.
func (s AddressSet) Len() int {
	return len(s)
}

// Union adds every member of other to s.
func (s AddressSet) Union(other AddressSet) {
	for a := range other {
		s.Add(a)
	}
}

// Intersect returns the members present in both sets.
func (s AddressSet) Intersect(other AddressSet) AddressSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(AddressSet)
	for a := range small {
		if large.Has(a) {
			out.Add(a)
		}
	}
	return out
}

// Values returns the members sorted lexicographically.
func (s AddressSet) Values() []Address {
	out := make([]Address, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}
