package notification

import (
	"context"
	"fmt"

	"trylocal/config"

	"gopkg.in/gomail.v2"
)

// SMTPEmailService is the production EmailService over SMTP.
type SMTPEmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPEmailService builds the mailer from app configuration.
func NewSMTPEmailService() *SMTPEmailService {
	cfg := config.AppConfig
	return &SMTPEmailService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

func (s *SMTPEmailService) Send(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *SMTPEmailService) SendOnboardingStarted(ctx context.Context, to, businessName string) error {
	subject, body := s.onboardingStartedMessage(businessName)
	return s.Send(ctx, to, subject, body)
}

func (s *SMTPEmailService) SendPayoutsVerified(ctx context.Context, to, businessName string) error {
	subject, body := s.payoutsVerifiedMessage(businessName)
	return s.Send(ctx, to, subject, body)
}

func (s *SMTPEmailService) SendAccountRestricted(ctx context.Context, to, businessName, reason string) error {
	subject, body := s.accountRestrictedMessage(businessName, reason)
	return s.Send(ctx, to, subject, body)
}

func (s *SMTPEmailService) onboardingStartedMessage(businessName string) (string, string) {
	subject := "Payment setup started for " + businessName
	body := fmt.Sprintf(
		`<p>Hi,</p>
<p>Payment setup for <b>%s</b> on Try Local Gresham has started. Finish the
verification steps with our payment partner to start receiving payouts.</p>
<p>You can resume setup any time from your business dashboard.</p>`, businessName)
	return subject, body
}

func (s *SMTPEmailService) payoutsVerifiedMessage(businessName string) (string, string) {
	subject := businessName + " is ready to receive payouts"
	body := fmt.Sprintf(
		`<p>Hi,</p>
<p>Good news: <b>%s</b> is fully verified and payouts are enabled. Customers
can now pay you directly through Try Local Gresham.</p>`, businessName)
	return subject, body
}

func (s *SMTPEmailService) accountRestrictedMessage(businessName, reason string) (string, string) {
	subject := "Action needed on your " + businessName + " payment account"
	body := fmt.Sprintf(
		`<p>Hi,</p>
<p>Your payment account for <b>%s</b> has been restricted (%s). Payouts are
paused until the issue is resolved.</p>
<p>Open your business dashboard to continue verification.</p>`, businessName, reason)
	return subject, body
}
