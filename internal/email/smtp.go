package email

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface over a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendInvitationEmail mails an invitation link into a tenant workspace.
func (s *SMTPSender) SendInvitationEmail(ctx context.Context, toEmail, tenantName, inviteURL string) error {
	content, err := renderEmailTemplate("invitation.html", invitationEmailData{
		baseEmailData: baseEmailData{
			Title:    "You have been invited",
			Heading:  fmt.Sprintf("Join %s", tenantName),
			CTALabel: "Accept invitation",
			CTAURL:   inviteURL,
		},
		TenantName: tenantName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf("Invitation to join %s", tenantName), content)
}

// SendRemovalEmail notifies a user their workspace access was removed.
func (s *SMTPSender) SendRemovalEmail(ctx context.Context, toEmail, tenantName string) error {
	content, err := renderEmailTemplate("removal.html", removalEmailData{
		baseEmailData: baseEmailData{
			Title:   "Workspace access removed",
			Heading: fmt.Sprintf("Your access to %s was removed", tenantName),
		},
		TenantName: tenantName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf("Your access to %s was removed", tenantName), content)
}

// Compile-time check that SMTPSender implements Sender.
var _ Sender = (*SMTPSender)(nil)
