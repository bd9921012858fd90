// Package mail renders and delivers transactional email.
package mail

import (
	"context"
	"fmt"
)

// TemplateElement identifies a part of an email template.
type TemplateElement string

const (
	ElementSubject TemplateElement = "subject"
	ElementBody    TemplateElement = "body"
)

const ViewConfirmation = "email_confirmation"

// Renderer renders one element of a named email template.
type Renderer interface {
	Render(ctx context.Context, name string, element TemplateElement, data any) (string, error)
}

// Sender delivers an HTML email.
type Sender interface {
	Send(ctx context.Context, from, recipient Address, subject, body string) error
}

// Service renders templates and hands the result to a Sender.
type Service struct {
	renderer Renderer
	sender   Sender
	from     Address
}

func NewService(renderer Renderer, sender Sender, from Address) *Service {
	return &Service{
		renderer: renderer,
		sender:   sender,
		from:     from,
	}
}

// SendMessage renders the subject and body of view name with data and sends it.
func (s *Service) SendMessage(ctx context.Context, name string, recipient Address, data any) error {
	subject, err := s.renderer.Render(ctx, name, ElementSubject, data)
	if err != nil {
		return fmt.Errorf("render %s subject: %w", name, err)
	}
	body, err := s.renderer.Render(ctx, name, ElementBody, data)
	if err != nil {
		return fmt.Errorf("render %s body: %w", name, err)
	}
	if err := s.sender.Send(ctx, s.from, recipient, subject, body); err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	return nil
}

type confirmationData struct {
	Title           string
	ConfirmationURL string
}

// SendConfirmation mails the registration link to the address being confirmed.
func (s *Service) SendConfirmation(ctx context.Context, to, link string) error {
	recipient, err := ParseAddress(to)
	if err != nil {
		return err
	}
	return s.SendMessage(ctx, ViewConfirmation, recipient, confirmationData{
		Title:           "Welcome to ChocoMax",
		ConfirmationURL: link,
	})
}
