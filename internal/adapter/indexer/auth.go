package indexer

import "github.com/valyala/fasthttp"

// CredentialScheme attaches the API key to an outbound request.
type CredentialScheme interface {
	// Name identifies the scheme in logs and metrics.
	Name() string
	// Apply sets the credential on req.
	Apply(req *fasthttp.Request, apiKey string)
}

// HeaderKey sends the key verbatim in a named header.
type HeaderKey struct {
	Header string
}

func (h HeaderKey) Name() string {
	return "header:" + h.Header
}

func (h HeaderKey) Apply(req *fasthttp.Request, apiKey string) {
	req.Header.Set(h.Header, apiKey)
}

// BearerToken sends the key as an Authorization bearer token.
type BearerToken struct{}

func (BearerToken) Name() string {
	return "bearer"
}

func (BearerToken) Apply(req *fasthttp.Request, apiKey string) {
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+apiKey)
}

// DefaultCredentialSchemes returns the schemes tried in order: X-API-Key, then bearer.
func DefaultCredentialSchemes() []CredentialScheme {
	return []CredentialScheme{
		HeaderKey{Header: "X-API-Key"},
		BearerToken{},
	}
}
