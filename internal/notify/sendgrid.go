package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/crossroads/apparel-backend/internal/models"
)

// Sender is the part of the SendGrid client used here.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGrid delivers messages through the SendGrid v3 API. A failed attempt
// is returned as-is; there is no retry.
type SendGrid struct {
	client Sender
	from   *mail.Email
}

func NewSendGrid(apiKey, fromEmail, fromName string) *SendGrid {
	return NewSendGridWithSender(sendgrid.NewSendClient(apiKey), fromEmail, fromName)
}

func NewSendGridWithSender(client Sender, fromEmail, fromName string) *SendGrid {
	return &SendGrid{client: client, from: mail.NewEmail(fromName, fromEmail)}
}

// SendWelcome sends the welcome template to to.
func (s *SendGrid) SendWelcome(ctx context.Context, to, name string) error {
	msg := WelcomeMessage(name)
	email := mail.NewSingleEmail(s.from, msg.Subject, mail.NewEmail(name, to), msg.Text, msg.HTML)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %w", models.ErrNotification, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid returned %d: %s", models.ErrNotification, resp.StatusCode, resp.Body)
	}
	return nil
}
