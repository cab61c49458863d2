package service

import (
	"context"
	"errors"

	d "github.com/shopveda/storefront/domain"
	"github.com/shopveda/storefront/internal/backend"
	"github.com/shopveda/storefront/internal/provider"
)

// confirmCardPayment runs the card path of one attempt: request a payment
// intent from the backend for the snapshot total, then confirm it with the
// provider. The client secret lives only inside this call.
func (s *CheckoutServiceImpl) confirmCardPayment(ctx context.Context, a *attempt, token string) error {
	clientSecret, err := s.backend.CreatePaymentIntent(ctx, token, d.MinorUnits(a.snapshot.TotalAmount))
	if err != nil {
		return failed(FailureIntentRequest, intentMessage(err), err)
	}

	result, err := s.provider.ConfirmCardPayment(ctx, clientSecret, provider.BillingDetails{
		Name:  a.shipping.Name,
		Email: a.shipping.Email,
		Phone: a.shipping.Phone,
	})
	if err != nil {
		return failed(FailureProvider, "Payment failed.", err)
	}

	if result.Error != nil {
		return failed(FailureProvider, result.Error.Message, result.Error)
	}
	if result.PaymentIntent == nil || result.PaymentIntent.Status != provider.StatusSucceeded {
		return failed(FailureUnexpectedStatus, "Unexpected payment status.", nil)
	}
	return nil
}

func intentMessage(err error) string {
	var reqErr *backend.RequestError
	if errors.As(err, &reqErr) && reqErr.Body != "" {
		return reqErr.Body
	}
	return "Failed to create payment intent"
}
