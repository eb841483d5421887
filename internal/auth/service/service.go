// Package service holds the authentication business logic: local
// credentials, social sign-in linking, and tenant onboarding.
package service

import (
	"context"
	"strings"
	"time"

	"raally_backend/internal/auth/password"
	"raally_backend/internal/auth/provider"
	"raally_backend/internal/auth/repository"
	"raally_backend/internal/events"
	"raally_backend/platform/apperr"
	"raally_backend/platform/config"
	"raally_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Stable error codes surfaced to clients. Changing one breaks client catalogs.
const (
	KeyNoEmail         = "auth-no-email"
	KeyInvalidProvider = "auth-invalid-provider"
	KeyInvalidCreds    = "auth-invalid-credentials"
	KeyEmailTaken      = "auth-email-taken"
)

// Service coordinates authentication operations.
type Service struct {
	repo      repository.AuthRepository
	providers *provider.Registry
	cfg       config.AuthServiceConfig
	bus       events.Bus
	log       *logger.Logger
}

// New creates a new auth service.
func New(repo repository.AuthRepository, providers *provider.Registry, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, providers: providers, cfg: cfg, bus: bus, log: log}
}

// SignUp registers a new local-credentials account and returns a session token.
func (s *Service) SignUp(ctx context.Context, email, plainPassword, fullName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return "", apperr.Validation("email and password are required")
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return "", apperr.Conflict("email already registered").WithKey(KeyEmailTaken)
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	first, last := splitFullName(fullName)
	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: hash,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "create user", err)
	}

	s.log.AuthEvent("sign_up", user.Email, true, "")
	return s.issueToken(ctx, user)
}

// SignIn authenticates local credentials and returns a session token.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", apperr.Unauthorized("invalid credentials").WithKey(KeyInvalidCreds)
	}

	if user.PasswordHash == "" || password.Compare(user.PasswordHash, plainPassword) != nil {
		s.log.AuthEvent("sign_in", user.Email, false, "password mismatch")
		return "", apperr.Unauthorized("invalid credentials").WithKey(KeyInvalidCreds)
	}

	s.log.AuthEvent("sign_in", user.Email, true, "")
	return s.issueToken(ctx, user)
}

// Me returns the account behind the given user id.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// issueToken signs a session JWT for the user. The token carries the user's
// default tenant and the roles held there; a user with no membership yet
// gets a token without tenant claims and must onboard first.
func (s *Service) issueToken(ctx context.Context, user repository.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(s.cfg.GetTokenTTL()).Unix(),
		"iat":   time.Now().Unix(),
	}

	tenantID, roles, err := s.repo.DefaultMembership(ctx, user.ID)
	if err == nil {
		claims["tenant_id"] = tenantID.String()
		claims["roles"] = roles
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return "", apperr.Wrap(apperr.KindInternal, "resolve membership", err)
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tokenObj.SignedString([]byte(s.cfg.GetJWTSecret()))
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "sign token", err)
	}
	return signed, nil
}

// splitFullName splits a display name into first and last name. The first
// token becomes the first name, the remaining tokens joined by single
// spaces become the last name.
func splitFullName(fullName string) (string, string) {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
