package services

import (
	"context"
	"fmt"

	"announcehub/internal/domain"
)

// Template names understood by the email renderer.
const (
	welcomeTemplate        = "welcome"
	scheduleDigestTemplate = "schedule_digest"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that renders templates and hands
// the result to the given Mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcomeMessage renders and sends the signup welcome email.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email: nil data")
	}
	return s.renderAndSend(ctx, welcomeTemplate, data.Email, data)
}

// SendScheduleDigest renders and sends the post-commit schedule summary.
func (s *emailService) SendScheduleDigest(ctx context.Context, data *domain.ScheduleDigestEmailData) error {
	if data == nil {
		return fmt.Errorf("schedule digest email: nil data")
	}
	return s.renderAndSend(ctx, scheduleDigestTemplate, data.Email, data)
}

func (s *emailService) renderAndSend(ctx context.Context, template, to string, data any) error {
	msg, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("render %s email: %w", template, err)
	}
	msg.To = to
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s email: %w", template, err)
	}
	return nil
}
