package notification

import "context"

// EmailService sends the marketplace's transactional emails to business
// owners. Delivery failures are the caller's to log; they must never fail
// the request that triggered them.
type EmailService interface {
	// Send delivers a raw message.
	Send(ctx context.Context, to, subject, body string) error
	// SendOnboardingStarted tells an owner their payment onboarding began.
	SendOnboardingStarted(ctx context.Context, to, businessName string) error
	// SendPayoutsVerified tells an owner their account can receive payouts.
	SendPayoutsVerified(ctx context.Context, to, businessName string) error
	// SendAccountRestricted tells an owner their account needs attention.
	SendAccountRestricted(ctx context.Context, to, businessName, reason string) error
}
