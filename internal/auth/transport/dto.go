// Package transport defines request and response DTOs for the auth module.
package transport

import (
	"time"

	"raally_backend/internal/auth/repository"
)

// SignUpRequest is the payload for local-credentials registration.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"max=255"`
}

// SignInRequest is the payload for local-credentials sign-in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OnboardRequest places a signed-in user into a tenant. Exactly one of
// InvitationToken or TenantName is expected.
type OnboardRequest struct {
	InvitationToken string `json:"invitationToken"`
	TenantName      string `json:"tenantName" validate:"max=255"`
}

// TokenResponse carries a signed session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthURLResponse carries the provider authorization redirect URL.
type AuthURLResponse struct {
	URL string `json:"url"`
}

// ProfileResponse is the wire representation of the signed-in account.
type ProfileResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToProfileResponse maps an account record to its wire representation.
func ToProfileResponse(u repository.User) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
