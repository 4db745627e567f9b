package domain

import "context"

// EmailMessage is a fully rendered email, ready to hand to a Mailer.
// Subject is plain text; at least one of HTMLBody and TextBody is set.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers rendered messages through a concrete provider.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer turns a named template set into a message body.
// The returned message has no recipient; callers fill in To.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (EmailMessage, error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email     string
	FirstName string
	UserID    string // optional, for future use
	Language  string // optional, for future locale/templates
}

// ScheduleDigestEmailData holds data for the post-commit schedule digest.
type ScheduleDigestEmailData struct {
	Email          string
	FirstName      string
	EventName      string
	ScheduledCount int
	SkippedCount   int
	FirstPostAt    string // formatted in the event timezone
	LastPostAt     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendScheduleDigest(ctx context.Context, data *ScheduleDigestEmailData) error
}
