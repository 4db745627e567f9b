package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"announcehub/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer creates a mailer for the configured provider. "ses" sends through
// AWS SES; "noop" and anything unrecognized log the message and drop it.
func NewMailer(cfg MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch cfg.Provider {
	case "ses":
		return newSESMailer(cfg, logger), nil
	case "noop":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, falling back to noop", "provider", cfg.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

type sesMailer struct {
	client *ses.Client
	source string
	logger *slog.Logger
}

func newSESMailer(cfg MailerConfig, logger *slog.Logger) *sesMailer {
	if cfg.SES.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for SES, use only in development")
	}
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.SES.InsecureSkipVerify,
				MinVersion:         tls.VersionTLS12,
			},
		},
	}
	awsCfg := aws.Config{
		Region: cfg.SES.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, ""),
		),
		HTTPClient: httpClient,
	}
	source := cfg.FromAddress
	if cfg.FromName != "" {
		source = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &sesMailer{
		client: ses.NewFromConfig(awsCfg),
		source: source,
		logger: logger,
	}
}

func (m *sesMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	body := &types.Body{}
	if msg.HTMLBody != "" {
		body.Html = sesContent(msg.HTMLBody)
	}
	if msg.TextBody != "" {
		body.Text = sesContent(msg.TextBody)
	}
	input := &ses.SendEmailInput{
		Source:      aws.String(m.source),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: sesContent(msg.Subject),
			Body:    body,
		},
	}
	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	m.logger.InfoContext(ctx, "email sent via SES",
		"to", msg.To,
		"message_id", aws.ToString(out.MessageId),
	)
	return nil
}

func sesContent(data string) *types.Content {
	return &types.Content{
		Data:    aws.String(data),
		Charset: aws.String("UTF-8"),
	}
}

// noopMailer logs what would have been sent. Used in development and tests.
type noopMailer struct {
	logger *slog.Logger
}

func (m *noopMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	m.logger.InfoContext(ctx, "email suppressed (noop mailer)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
