package notification

import (
	"context"
	"fmt"

	"trylocal/models"
	"trylocal/services/tasks"

	"github.com/hibiken/asynq"
)

// QueuedEmailService enqueues messages onto the background worker instead
// of dialing SMTP in the request path. Bodies are composed by the wrapped
// service; only delivery is deferred.
type QueuedEmailService struct {
	Client   *asynq.Client
	Composer *SMTPEmailService
}

func NewQueuedEmailService(client *asynq.Client) *QueuedEmailService {
	return &QueuedEmailService{
		Client:   client,
		Composer: NewSMTPEmailService(),
	}
}

func (s *QueuedEmailService) Send(_ context.Context, to, subject, body string) error {
	task, opts, err := tasks.NewEmailTask(models.EmailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue email to %s: %w", to, err)
	}
	return nil
}

func (s *QueuedEmailService) SendOnboardingStarted(ctx context.Context, to, businessName string) error {
	subject, body := s.Composer.onboardingStartedMessage(businessName)
	return s.Send(ctx, to, subject, body)
}

func (s *QueuedEmailService) SendPayoutsVerified(ctx context.Context, to, businessName string) error {
	subject, body := s.Composer.payoutsVerifiedMessage(businessName)
	return s.Send(ctx, to, subject, body)
}

func (s *QueuedEmailService) SendAccountRestricted(ctx context.Context, to, businessName, reason string) error {
	subject, body := s.Composer.accountRestrictedMessage(businessName, reason)
	return s.Send(ctx, to, subject, body)
}
