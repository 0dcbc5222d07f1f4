package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
)

// External failure categories, used by callers to decide whether an error
// is retryable. Nothing in this package retries automatically.
const (
	CategoryValidation     = "validation"
	CategoryAuthentication = "authentication"
	CategoryTransient      = "transient"
)

// ValidationError indicates missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

// NotFoundError indicates the referenced business or payment account is absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ExternalServiceError wraps a payments-platform or store failure. The
// message is already sanitized for returning to a client; Category tells
// the caller whether a retry could help.
type ExternalServiceError struct {
	Category string
	Message  string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("payments platform error (%s): %s", e.Category, e.Message)
}

// Retryable reports whether the failure was transient.
func (e *ExternalServiceError) Retryable() bool {
	return e.Category == CategoryTransient
}

// categorizeStripeError re-labels a raw Stripe error into this package's
// taxonomy rather than passing the provider's shape through verbatim.
func categorizeStripeError(err error) error {
	stripeErr, ok := err.(*stripe.Error)
	if !ok {
		return &ExternalServiceError{Category: CategoryTransient, Message: "payments platform unreachable"}
	}

	if stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == 404 {
		return &NotFoundError{Resource: "payment account", ID: stripeErr.Param}
	}

	switch stripeErr.Type {
	case stripe.ErrorTypeInvalidRequest:
		return &ValidationError{Message: "payments platform rejected the request"}
	case stripe.ErrorTypeAuthentication:
		return &ExternalServiceError{Category: CategoryAuthentication, Message: "payments platform authentication failed"}
	default:
		return &ExternalServiceError{Category: CategoryTransient, Message: "payments platform temporarily unavailable"}
	}
}
