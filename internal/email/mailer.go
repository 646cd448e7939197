// Package email sends transactional mail through Resend.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer sends login links. Faked in tests.
type Mailer interface {
	SendMagicLink(ctx context.Context, to, link string) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func NewResendMailer(apiKey, from string, log *zap.Logger) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

// SendMagicLink emails a single-use login link.
func (m *ResendMailer) SendMagicLink(ctx context.Context, to, link string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Your Launch List login link",
		Html: fmt.Sprintf(
			`<p>Click to sign in to Launch List:</p><p><a href="%s">Sign in</a></p><p>The link expires in 15 minutes. If you didn't request it, ignore this email.</p>`,
			link,
		),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send login email: %w", err)
	}

	m.log.Info("sent magic link email", zap.String("to", to), zap.String("email_id", sent.Id))
	return nil
}
