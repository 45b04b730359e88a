// Package mailer sends transactional email through Resend.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Email is one outbound message with an HTML body.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer delivers an email or reports why it could not.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
	logger *zap.Logger
}

func NewResendMailer(apiKey string, logger *zap.Logger) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), logger: logger}
}

func (m *ResendMailer) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return fmt.Errorf("mailer: empty recipient")
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("mailer: send to %s: %w", email.To, err)
	}

	m.logger.Info("email sent", zap.String("to", email.To), zap.String("id", sent.Id))
	return nil
}

// NoopMailer drops every email. It is used when no API key is configured.
type NoopMailer struct {
	logger *zap.Logger
}

func NewNoopMailer(logger *zap.Logger) *NoopMailer {
	return &NoopMailer{logger: logger}
}

func (m *NoopMailer) Send(_ context.Context, email Email) error {
	m.logger.Debug("email skipped, no provider configured", zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}

// New picks the Resend mailer when an API key is present.
func New(apiKey string, logger *zap.Logger) Mailer {
	if apiKey == "" {
		return NewNoopMailer(logger)
	}
	return NewResendMailer(apiKey, logger)
}
