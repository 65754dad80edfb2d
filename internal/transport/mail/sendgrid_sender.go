package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
)

type SendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
	log      *logger.Logger
}

type SendGridOption func(*SendGridSender)

// WithSendGridHost points the client at a different API host.
func WithSendGridHost(host string) SendGridOption {
	return func(s *SendGridSender) {
		s.client.Request.BaseURL = host + "/v3/mail/send"
	}
}

func NewSendGridSender(apiKey, from, fromName string, log *logger.Logger, opts ...SendGridOption) (*SendGridSender, error) {
	if apiKey == "" {
		return nil, errors.New("missing SENDGRID_API_KEY")
	}
	if from == "" {
		return nil, errors.New("missing MAIL_FROM")
	}
	s := &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
		log:      log.With("sender", "sendgrid"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *SendGridSender) SendCode(ctx context.Context, msg CodeMessage) error {
	subject, text, html := compose(msg)
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.fromName, s.from),
		subject,
		sgmail.NewEmail("", msg.To),
		text,
		html,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.log.Warn("sendgrid send failed", "error", err)
		return err
	}
	if response.StatusCode >= 400 {
		s.log.Warn("sendgrid rejected message", "status", response.StatusCode)
		return fmt.Errorf("sendgrid: status %d", response.StatusCode)
	}
	return nil
}

var _ Sender = (*SendGridSender)(nil)
