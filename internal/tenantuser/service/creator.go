package service

import (
	"context"
	"strings"

	"raally_backend/internal/auth/token"
	"raally_backend/internal/events"
	"raally_backend/internal/tenantuser/domain"
	"raally_backend/internal/tenantuser/repository"
	"raally_backend/platform/apperr"
)

// invitation pairs an invited address with the raw token handed to the
// notification pipeline after commit.
type invitation struct {
	user  repository.User
	token string
}

// InviteUsers invites the given email addresses into the tenant with the
// given role set. Users are created on the fly when the address is unknown;
// addresses that already hold a membership are skipped. The whole batch is
// one unit of work.
func (s *Service) InviteUsers(ctx context.Context, tenant domain.Tenant, actor domain.Actor, emails []string, roles domain.RoleSet) error {
	if err := validateContext(tenant, actor); err != nil {
		return err
	}
	if roles == nil {
		return domain.ErrInvalidInput("roles is required (can be empty)")
	}

	normalized := normalizeEmails(emails)
	if len(normalized) == 0 {
		return domain.ErrInvalidInput("emails is required and cannot be empty")
	}

	txn, err := s.store.Begin(ctx)
	if err != nil {
		return asDomainError(err)
	}

	invitations := make([]invitation, 0, len(normalized))
	for _, email := range normalized {
		invite, created, err := s.inviteOne(ctx, txn, tenant, email, roles)
		if err != nil {
			s.rollback(ctx, txn, "invite users rollback")
			return err
		}
		if created {
			invitations = append(invitations, invite)
		}
	}

	if err := txn.Commit(ctx); err != nil {
		s.rollback(ctx, txn, "invite users rollback")
		return asDomainError(err)
	}

	s.log.Info("members invited", "tenantId", tenant.ID, "count", len(invitations))
	for _, invite := range invitations {
		s.bus.Publish(ctx, events.UserInvited{
			BaseEvent:  events.NewBaseEvent(),
			TenantID:   tenant.ID,
			TenantName: tenant.Name,
			Email:      invite.user.Email,
			Roles:      roles.Strings(),
			Token:      invite.token,
		})
	}
	return nil
}

// inviteOne resolves or creates the user and attaches an invited membership.
// Returns created=false when the user already belongs to the tenant.
func (s *Service) inviteOne(ctx context.Context, txn repository.Txn, tenant domain.Tenant, email string, roles domain.RoleSet) (invitation, bool, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if _, err := s.store.FindMembership(ctx, tenant.ID, user.ID); err == nil {
			return invitation{}, false, nil
		} else if !apperr.Is(err, apperr.KindNotFound) {
			return invitation{}, false, asDomainError(err)
		}
	case apperr.Is(err, apperr.KindNotFound):
		user, err = s.store.CreateUser(ctx, txn, email)
		if err != nil {
			return invitation{}, false, asDomainError(err)
		}
	default:
		return invitation{}, false, asDomainError(err)
	}

	rawToken, err := token.GenerateRandomToken(32)
	if err != nil {
		return invitation{}, false, asDomainError(err)
	}

	membership := domain.Membership{
		TenantID: tenant.ID,
		UserID:   user.ID,
		Roles:    roles,
		Status:   domain.MembershipInvited,
	}
	if err := s.store.CreateMembership(ctx, txn, membership, token.HashSHA256(rawToken)); err != nil {
		return invitation{}, false, asDomainError(err)
	}

	return invitation{user: user, token: rawToken}, true, nil
}

// normalizeEmails trims, lowercases, and de-duplicates the address list.
func normalizeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		cleaned := strings.ToLower(strings.TrimSpace(email))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
