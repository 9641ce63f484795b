package services

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends account emails through SendGrid. With no API key
// configured it logs and skips, so local setups work without email.
type SendGridMailer struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridMailer(apiKey, from, fromName string) *SendGridMailer {
	return &SendGridMailer{apiKey: apiKey, from: from, fromName: fromName}
}

func (m *SendGridMailer) SendConfirmation(toEmail, link string) error {
	if m.apiKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("Confirm your %s account", m.fromName)
	plain := "Confirm your account: " + link
	html := fmt.Sprintf(`<p>Welcome to %s!</p><p><a href="%s">Click here to confirm your account</a>.</p>`, m.fromName, link)

	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.from),
		subject,
		mail.NewEmail("", toEmail),
		plain,
		html,
	)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	log.Printf("✅ Confirmation email sent to %s", toEmail)
	return nil
}
