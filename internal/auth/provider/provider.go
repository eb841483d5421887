// Package provider abstracts social sign-in providers behind a single
// interface, so the sign-in flow never branches on the provider name.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// VerifiedIdentity is what a provider asserts about the signed-in user
// after a successful code exchange.
type VerifiedIdentity struct {
	Provider      string
	SubjectID     string
	Email         string
	EmailVerified bool
	FullName      string
}

// Provider is a social sign-in provider capable of exchanging an
// authorization code for a verified identity.
type Provider interface {
	// Name returns the provider identifier used in routes and stored links.
	Name() string
	// AuthURL builds the authorization redirect URL for the given state.
	AuthURL(state string) string
	// Exchange trades an authorization code for the provider's identity claims.
	Exchange(ctx context.Context, code string) (VerifiedIdentity, error)
}

// Registry holds the configured providers keyed by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a registry from the given providers. Providers with
// empty client credentials are skipped so unset environments do not expose
// half-configured routes.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// Get returns the provider registered under name, or false when unknown.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// fetchJSON performs an authenticated GET against the provider's userinfo
// endpoint and decodes the JSON body into out.
func fetchJSON(ctx context.Context, config *oauth2.Config, tok *oauth2.Token, url string, out interface{}) error {
	client := config.Client(ctx, tok)
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetch userinfo: status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode userinfo: %w", err)
	}
	return nil
}
