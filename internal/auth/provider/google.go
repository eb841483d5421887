package provider

import (
	"context"
	"fmt"

	"raally_backend/platform/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Google performs sign-in through Google OAuth 2.0.
type Google struct {
	config *oauth2.Config
}

// NewGoogle builds the Google provider from configuration. Returns nil when
// the client credentials are not configured.
func NewGoogle(cfg config.SocialAuthConfig) Provider {
	if cfg.GetGoogleClientID() == "" || cfg.GetGoogleClientSecret() == "" {
		return nil
	}
	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			RedirectURL:  cfg.GetGoogleCallbackURL(),
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Name returns the provider identifier.
func (g *Google) Name() string { return "google" }

// AuthURL builds the authorization redirect URL.
func (g *Google) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for Google's identity claims.
func (g *Google) Exchange(ctx context.Context, code string) (VerifiedIdentity, error) {
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("google code exchange: %w", err)
	}

	var claims struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := fetchJSON(ctx, g.config, tok, googleUserInfoURL, &claims); err != nil {
		return VerifiedIdentity{}, err
	}

	return VerifiedIdentity{
		Provider:      g.Name(),
		SubjectID:     claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		FullName:      claims.Name,
	}, nil
}

// Compile-time check that Google implements Provider.
var _ Provider = (*Google)(nil)
