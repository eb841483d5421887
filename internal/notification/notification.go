// Package notification turns domain events into outbound email. It has no
// HTTP surface; it subscribes to the event bus at startup.
package notification

import (
	"context"
	"errors"
	"strings"

	"raally_backend/internal/email"
	"raally_backend/internal/events"
	"raally_backend/platform/config"
	"raally_backend/platform/logger"
)

// Notifier listens for membership events and emails the affected users.
type Notifier struct {
	mail        email.Sender
	frontendURL string
	log         *logger.Logger
}

// New creates a notifier and subscribes it to the membership events.
func New(bus events.Bus, mail email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Notifier {
	n := &Notifier{
		mail:        mail,
		frontendURL: strings.TrimRight(cfg.GetFrontendURL(), "/"),
		log:         log,
	}
	bus.Subscribe("tenantuser.user_invited", events.HandlerFunc(n.onUserInvited))
	bus.Subscribe("tenantuser.member_removed", events.HandlerFunc(n.onMemberRemoved))
	return n
}

func (n *Notifier) onUserInvited(ctx context.Context, event events.Event) error {
	invited, ok := event.(events.UserInvited)
	if !ok {
		return errors.New("unexpected event payload for tenantuser.user_invited")
	}

	inviteURL := n.frontendURL + "/auth/invitation?token=" + invited.Token
	if err := n.mail.SendInvitationEmail(ctx, invited.Email, invited.TenantName, inviteURL); err != nil {
		n.log.Error("send invitation email", "email", invited.Email, "error", err)
		return err
	}
	return nil
}

func (n *Notifier) onMemberRemoved(ctx context.Context, event events.Event) error {
	removed, ok := event.(events.MemberRemoved)
	if !ok {
		return errors.New("unexpected event payload for tenantuser.member_removed")
	}
	if removed.Email == "" {
		return nil
	}

	if err := n.mail.SendRemovalEmail(ctx, removed.Email, removed.TenantName); err != nil {
		n.log.Error("send removal email", "email", removed.Email, "error", err)
		return err
	}
	return nil
}
