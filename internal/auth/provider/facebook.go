package provider

import (
	"context"
	"fmt"

	"raally_backend/platform/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email"

// Facebook performs sign-in through Facebook Login.
type Facebook struct {
	config *oauth2.Config
}

// NewFacebook builds the Facebook provider from configuration. Returns nil
// when the client credentials are not configured.
func NewFacebook(cfg config.SocialAuthConfig) Provider {
	if cfg.GetFacebookClientID() == "" || cfg.GetFacebookClientSecret() == "" {
		return nil
	}
	return &Facebook{
		config: &oauth2.Config{
			ClientID:     cfg.GetFacebookClientID(),
			ClientSecret: cfg.GetFacebookClientSecret(),
			RedirectURL:  cfg.GetFacebookCallbackURL(),
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
	}
}

// Name returns the provider identifier.
func (f *Facebook) Name() string { return "facebook" }

// AuthURL builds the authorization redirect URL.
func (f *Facebook) AuthURL(state string) string {
	return f.config.AuthCodeURL(state)
}

// Exchange trades the authorization code for Facebook's identity claims.
// Facebook only exposes an email when the account has one and the user
// granted the scope; verification is implied when present.
func (f *Facebook) Exchange(ctx context.Context, code string) (VerifiedIdentity, error) {
	tok, err := f.config.Exchange(ctx, code)
	if err != nil {
		return VerifiedIdentity{}, fmt.Errorf("facebook code exchange: %w", err)
	}

	var claims struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := fetchJSON(ctx, f.config, tok, facebookUserInfoURL, &claims); err != nil {
		return VerifiedIdentity{}, err
	}

	return VerifiedIdentity{
		Provider:      f.Name(),
		SubjectID:     claims.ID,
		Email:         claims.Email,
		EmailVerified: claims.Email != "",
		FullName:      claims.Name,
	}, nil
}

// Compile-time check that Facebook implements Provider.
var _ Provider = (*Facebook)(nil)
