package service

import (
	"context"
	"strings"
	"time"

	"raally_backend/internal/auth/token"
	"raally_backend/internal/events"
	"raally_backend/platform/apperr"

	"github.com/google/uuid"
)

// HandleOnboard places a freshly signed-in user into a tenant and returns a
// session token scoped to it. With an invitation token the matching pending
// invitation is accepted; otherwise a new free-plan tenant is created with
// the user as its sole admin member.
func (s *Service) HandleOnboard(ctx context.Context, userID uuid.UUID, invitationToken, tenantName string) (string, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if invitationToken != "" {
		hash := token.HashSHA256(invitationToken)
		issuedAfter := time.Now().Add(-s.cfg.GetInvitationTokenTTL())
		tenantID, err := s.repo.AcceptInvitation(ctx, hash, user.ID, issuedAfter)
		if err != nil {
			return "", err
		}
		s.log.Info("invitation accepted", "tenant_id", tenantID.String(), "user_id", user.ID.String())
		return s.issueToken(ctx, user)
	}

	tenantName = strings.TrimSpace(tenantName)
	if tenantName == "" {
		return "", apperr.Validation("tenant name is required")
	}

	tenantID, err := s.repo.CreateTenantWithOwner(ctx, tenantName, user.ID)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "onboard tenant", err)
	}

	if err := s.bus.PublishSync(ctx, events.TenantCreated{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    tenantID,
		Name:        tenantName,
		OwnerUserID: user.ID,
	}); err != nil {
		return "", err
	}
	return s.issueToken(ctx, user)
}
