package utils

import (
	"fmt"

	"academy/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers an HTML e-mail to a list of recipients
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

// SendGridMailer sends through the SendGrid v3 API
type SendGridMailer struct {
	APIKey   string
	From     string
	FromName string
}

func (m SendGridMailer) Send(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(m.FromName, m.From))
	message.Subject = subject

	p := mail.NewPersonalization()
	for _, addr := range to {
		p.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	resp, err := sendgrid.NewSendClient(m.APIKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, truncate(resp.Body, 256))
	}

	logger.Log.Infow("email sent", "subject", subject, "recipients", len(to))
	return nil
}
