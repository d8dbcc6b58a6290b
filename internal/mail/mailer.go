// Package mail delivers transactional email over SMTP. Delivery failures
// are the caller's to log; nothing here retries or queues.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config carries the SMTP transport settings and the public base URL used
// to build verification links.
type Config struct {
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	From     string
	BaseURL  string
}

// Dialer abstracts gomail's DialAndSend for tests.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends verification email through an SMTP relay.
type SMTPMailer struct {
	cfg    Config
	dialer Dialer
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

// WithDialer swaps the transport. Used by tests.
func (m *SMTPMailer) WithDialer(d Dialer) *SMTPMailer {
	m.dialer = d
	return m
}

// SendVerificationEmail builds the verification link for token and mails it
// to the given address. The context deadline only bounds the call site;
// gomail itself dials synchronously.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	if m.cfg.SMTPHost == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp transport is not configured")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/verify?token=%s", m.cfg.BaseURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your email address")
	msg.SetBody("text/html", verificationBody(link))

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func verificationBody(link string) string {
	return fmt.Sprintf(`<p>Thanks for signing up!</p>
<p>Click the link below to verify your email address:</p>
<p><a href="%s">%s</a></p>
<p>If you did not create an account, you can ignore this message.</p>`, link, link)
}
