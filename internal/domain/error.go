package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration means a required setting (indexer API key, registry URL) is missing.
	ErrConfiguration = errors.New("service is not configured")

	// ErrInvalidWallet means the supplied wallet address is missing or not a canonical EVM address.
	ErrInvalidWallet = errors.New("invalid wallet address")

	// ErrRegistryUnavailable means the dApp registry could not be fetched or decoded.
	ErrRegistryUnavailable = errors.New("dApp registry unavailable")

	// ErrUpstream means the transaction indexer failed or reported an error.
	ErrUpstream = errors.New("transaction indexer failure")
)

// UpstreamError describes a failure reported by the transaction indexer.
// StatusCode is set for HTTP-level failures, Code and Reason for application-level ones.
type UpstreamError struct {
	StatusCode int
	Code       int64
	Reason     string
}

func (e *UpstreamError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: HTTP %d", ErrUpstream, e.StatusCode)
	}
	if e.StatusCode != 0 && e.StatusCode != 200 {
		return fmt.Sprintf("%s: HTTP %d: %s", ErrUpstream, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrUpstream, e.Reason)
}

// Unwrap lets errors.Is match ErrUpstream.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
