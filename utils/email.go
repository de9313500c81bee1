package utils

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-shopcart/models"
)

// EmailService sends transactional mail through SendGrid. With no API key
// configured it becomes a no-op, so local setups work without one.
type EmailService struct {
	client *sendgrid.Client
	sender string
	log    zerolog.Logger
}

// NewEmailService creates an EmailService. apiKey may be empty.
func NewEmailService(apiKey, sender string, log zerolog.Logger) *EmailService {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return &EmailService{client: client, sender: sender, log: log}
}

// SendCheckoutConfirmation mails the user a summary of a completed
// checkout.
func (es *EmailService) SendCheckoutConfirmation(user models.User, total float64) error {
	subject := "Order Confirmation"
	plain := fmt.Sprintf("Thank you for your purchase! Your order totalling $%.2f has been placed successfully.", total)
	html := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order totalling <strong>$%.2f</strong> has been placed successfully.<br><br>It will be delivered to:<br>%s",
		user.Name, total, user.Address,
	)
	return es.send(user.Email, subject, plain, html)
}

func (es *EmailService) send(toEmail, subject, plain, html string) error {
	if es.client == nil {
		es.log.Debug().Str("to", toEmail).Str("subject", subject).Msg("email disabled, skipping send")
		return nil
	}

	from := mail.NewEmail("", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	response, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email rejected: status=%d body=%s", response.StatusCode, response.Body)
	}
	es.log.Info().Str("to", toEmail).Str("subject", subject).Msg("email sent")
	return nil
}
