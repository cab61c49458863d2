package service

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutInProgress   = errors.New("a checkout attempt is already in progress")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	IllegalTransitionError  = errors.New("illegal transition of checkout status")
)

// FailureKind classifies where a checkout attempt failed.
type FailureKind string

const (
	FailureValidation       FailureKind = "VALIDATION"
	FailureIntentRequest    FailureKind = "INTENT_REQUEST"
	FailureProvider         FailureKind = "PROVIDER"
	FailureOrderSubmission  FailureKind = "ORDER_SUBMISSION"
	FailureUnexpectedStatus FailureKind = "UNEXPECTED_STATUS"
)

// AttemptError is a failed checkout attempt. Message is the user-facing
// string; the wrapped error keeps the cause for logging.
type AttemptError struct {
	Kind    FailureKind
	Message string
	cause   error
}

func (e *AttemptError) Error() string {
	return e.Message
}

func (e *AttemptError) Unwrap() error {
	return e.cause
}

func failed(kind FailureKind, message string, cause error) *AttemptError {
	return &AttemptError{Kind: kind, Message: message, cause: cause}
}
