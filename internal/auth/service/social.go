package service

import (
	"context"
	"strings"

	"raally_backend/internal/auth/provider"
	"raally_backend/internal/auth/repository"
	"raally_backend/platform/apperr"
)

// Provider resolves a configured social provider by name. An unknown or
// unconfigured name surfaces the stable auth-invalid-provider code.
func (s *Service) Provider(name string) (provider.Provider, error) {
	p, ok := s.providers.Get(name)
	if !ok {
		return nil, apperr.BadRequest("invalid sign-in provider: " + name).WithKey(KeyInvalidProvider)
	}
	return p, nil
}

// SignInFromSocial resolves or creates the account behind a verified social
// identity and returns a session token. Lookup order: the stored
// (provider, subject) link first, then a case-insensitive email match; a
// fresh account is created when neither resolves. The link is recorded so
// the next sign-in short-circuits on the first lookup.
func (s *Service) SignInFromSocial(ctx context.Context, identity provider.VerifiedIdentity) (string, error) {
	if _, err := s.Provider(identity.Provider); err != nil {
		return "", err
	}

	user, err := s.repo.GetUserByProvider(ctx, identity.Provider, identity.SubjectID)
	if err == nil {
		return s.issueToken(ctx, user)
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return "", apperr.Wrap(apperr.KindInternal, "resolve identity link", err)
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return "", apperr.BadRequest("provider returned no usable email").WithKey(KeyNoEmail)
	}

	user, err = s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing local account; attach the social identity to it.
	case apperr.Is(err, apperr.KindNotFound):
		first, last := splitFullName(identity.FullName)
		user, err = s.repo.CreateUser(ctx, repository.CreateUserParams{
			Email:         email,
			FirstName:     first,
			LastName:      last,
			EmailVerified: identity.EmailVerified,
		})
		if err != nil {
			return "", apperr.Wrap(apperr.KindInternal, "create social user", err)
		}
	default:
		return "", apperr.Wrap(apperr.KindInternal, "resolve social email", err)
	}

	if err := s.repo.LinkProvider(ctx, user.ID, identity.Provider, identity.SubjectID); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "link provider", err)
	}

	s.log.AuthEvent("social_sign_in", user.Email, true, "")
	return s.issueToken(ctx, user)
}
