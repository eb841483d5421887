// Package email delivers transactional mail for the application.
package email

import (
	"context"

	"raally_backend/platform/config"
)

// Sender delivers the application's transactional emails.
type Sender interface {
	SendInvitationEmail(ctx context.Context, toEmail, tenantName, inviteURL string) error
	SendRemovalEmail(ctx context.Context, toEmail, tenantName string) error
}

// NoopSender discards all mail. Used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendInvitationEmail(ctx context.Context, toEmail, tenantName, inviteURL string) error {
	return nil
}

func (NoopSender) SendRemovalEmail(ctx context.Context, toEmail, tenantName string) error {
	return nil
}

// NewSender builds the configured sender, or a no-op when delivery is disabled.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
