package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, username, password, from, fromName string) *SMTPSender {
	return &SMTPSender{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
		fromName: strings.TrimSpace(fromName),
		send:     smtp.SendMail,
	}
}

func (m *SMTPSender) SendCode(ctx context.Context, msg CodeMessage) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, _ := compose(msg)

	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	var message strings.Builder
	fmt.Fprintf(&message, "From: %s\r\n", from)
	fmt.Fprintf(&message, "To: %s\r\n", msg.To)
	fmt.Fprintf(&message, "Subject: %s\r\n", subject)
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, m.port)
	if err := m.send(addr, auth, m.from, []string{msg.To}, []byte(message.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

var _ Sender = (*SMTPSender)(nil)
