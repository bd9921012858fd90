package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// SMTPSender delivers mail through an SMTP relay using STARTTLS and PLAIN auth.
type SMTPSender struct {
	settings SMTPSettings
	dial     func(ctx context.Context, msg *gomail.Msg) error
}

func NewSMTPSender(s SMTPSettings) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(s.Port),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}
	client, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPSender{
		settings: s,
		dial: func(ctx context.Context, msg *gomail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, from, recipient Address, subject, body string) error {
	msg, err := s.message(from, recipient, subject, body)
	if err != nil {
		return err
	}
	if err := s.dial(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) message(from, recipient Address, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if s.settings.FromName != "" {
		if err := msg.FromFormat(s.settings.FromName, string(from)); err != nil {
			return nil, fmt.Errorf("set from: %w", err)
		}
	} else if err := msg.From(string(from)); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(string(recipient)); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)
	return msg, nil
}
