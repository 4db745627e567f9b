package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"announcehub/internal/domain"
)

// fakeMailer records every message handed to it; err is injectable.
type fakeMailer struct {
	sent []domain.EmailMessage
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeTemplateRenderer returns a canned message and captures the inputs.
type fakeTemplateRenderer struct {
	msg          domain.EmailMessage
	err          error
	lastTemplate string
	lastData     any
}

func (f *fakeTemplateRenderer) Render(templateName string, data any) (domain.EmailMessage, error) {
	f.lastTemplate = templateName
	f.lastData = data
	if f.err != nil {
		return domain.EmailMessage{}, f.err
	}
	return f.msg, nil
}

func TestEmailService_SendWelcomeMessage(t *testing.T) {
	t.Run("renders welcome template and fills recipient", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeTemplateRenderer{msg: domain.EmailMessage{
			Subject:  "Welcome to AnnounceHub, Ada!",
			HTMLBody: "<p>hello</p>",
			TextBody: "hello",
		}}
		svc := NewEmailService(mailer, renderer)

		data := &domain.WelcomeMessageEmailData{Email: "ada@example.com", FirstName: "Ada"}
		err := svc.SendWelcomeMessage(context.Background(), data)
		require.NoError(t, err)

		assert.Equal(t, "welcome", renderer.lastTemplate)
		assert.Same(t, data, renderer.lastData)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "ada@example.com", mailer.sent[0].To)
		assert.Equal(t, "Welcome to AnnounceHub, Ada!", mailer.sent[0].Subject)
	})

	t.Run("nil data", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeTemplateRenderer{})

		err := svc.SendWelcomeMessage(context.Background(), nil)
		assert.Error(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("renderer failure is wrapped and nothing is sent", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeTemplateRenderer{err: assert.AnError}
		svc := NewEmailService(mailer, renderer)

		err := svc.SendWelcomeMessage(context.Background(), &domain.WelcomeMessageEmailData{Email: "x@example.com"})
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "render welcome email")
		assert.Empty(t, mailer.sent)
	})

	t.Run("mailer failure is wrapped", func(t *testing.T) {
		mailer := &fakeMailer{err: assert.AnError}
		renderer := &fakeTemplateRenderer{msg: domain.EmailMessage{Subject: "s"}}
		svc := NewEmailService(mailer, renderer)

		err := svc.SendWelcomeMessage(context.Background(), &domain.WelcomeMessageEmailData{Email: "x@example.com"})
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "send welcome email")
	})
}

func TestEmailService_SendScheduleDigest(t *testing.T) {
	t.Run("renders digest template and fills recipient", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeTemplateRenderer{msg: domain.EmailMessage{
			Subject:  "Your announcement schedule for DevConf",
			TextBody: "3 scheduled",
		}}
		svc := NewEmailService(mailer, renderer)

		data := &domain.ScheduleDigestEmailData{
			Email:          "org@example.com",
			EventName:      "DevConf",
			ScheduledCount: 3,
		}
		err := svc.SendScheduleDigest(context.Background(), data)
		require.NoError(t, err)

		assert.Equal(t, "schedule_digest", renderer.lastTemplate)
		assert.Same(t, data, renderer.lastData)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "org@example.com", mailer.sent[0].To)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeTemplateRenderer{})
		assert.Error(t, svc.SendScheduleDigest(context.Background(), nil))
	})
}
