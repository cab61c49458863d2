package provider

import "context"

// StatusSucceeded is the payment-intent status reported after a successful
// confirmation. Any other status without an error object is unexpected.
const StatusSucceeded = "succeeded"

// BillingDetails identifies the cardholder, filled from the shipping info.
type BillingDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Error is a confirmation the provider rejected. Message is user-facing.
type Error struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

type PaymentIntent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ConfirmResult mirrors the provider's confirm outcome: exactly one of Error
// or PaymentIntent is set.
type ConfirmResult struct {
	Error         *Error         `json:"error,omitempty"`
	PaymentIntent *PaymentIntent `json:"paymentIntent,omitempty"`
}

// CardConfirmer is the slice of the payment provider's client used at
// checkout. The provider is an opaque collaborator; callers only see the
// confirm outcome.
type CardConfirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, details BillingDetails) (*ConfirmResult, error)
}
