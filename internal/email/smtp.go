package email

import (
	"context"
	"fmt"
	"net/smtp"

	jwemail "github.com/jordan-wright/email"
)

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
}

func NewSMTPSender(host, port, user, pass string) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, pass: pass}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	e := jwemail.NewEmail()
	e.From = msg.From
	e.To = msg.To
	e.Subject = msg.Subject
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}
	if msg.Text != "" {
		e.Text = []byte(msg.Text)
	}

	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("SMTP send: %w", err)
	}
	return nil
}
