package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	d "github.com/shopveda/storefront/domain"
	"github.com/shopveda/storefront/internal/backend"
	"github.com/shopveda/storefront/internal/cart"
)

// confirmationPath is where the client lands after a completed checkout.
const confirmationPath = "/thankyou"

// PlaceOrder runs one checkout attempt end to end: validate shipping info,
// run the selected payment path, then submit the order. Steps are strictly
// sequential; the order submission must know the final payment outcome.
func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, request *CheckoutRequest) (*CheckoutResult, error) {
	if !request.Method.Valid() {
		return nil, ErrUnknownPaymentMethod
	}
	if !s.begin(request.UserID) {
		return nil, ErrCheckoutInProgress
	}
	defer s.end(request.UserID)

	a := &attempt{
		id:       uuid.NewString(),
		status:   d.CheckoutStatusIdle,
		shipping: request.ShippingInfo,
		method:   request.Method,
	}
	if err := a.transition(d.CheckoutStatusValidating); err != nil {
		return nil, err
	}

	if err := request.ShippingInfo.Validate(); err != nil {
		a.fail()
		return nil, failed(FailureValidation, "Please fill in all shipping details.", err)
	}

	snapshot, err := s.takeCartSnapshot(ctx, request.UserID)
	if err != nil {
		a.fail()
		return nil, err
	}
	a.snapshot = snapshot

	var paymentStatus d.PaymentStatus
	switch request.Method {
	case d.PaymentMethodStripe:
		if err := a.transition(d.CheckoutStatusCardFlow); err != nil {
			return nil, err
		}
		if err := s.confirmCardPayment(ctx, a, request.Token); err != nil {
			a.fail()
			return nil, err
		}
		paymentStatus = d.PaymentStatusPaid
	case d.PaymentMethodCOD:
		if err := a.transition(d.CheckoutStatusCODFlow); err != nil {
			return nil, err
		}
		paymentStatus = d.PaymentStatusPending
	}

	order := d.NewOrderRequest(snapshot, request.ShippingInfo, request.Method, paymentStatus)
	if err := s.backend.SubmitOrder(ctx, request.Token, order); err != nil {
		a.fail()
		return nil, failed(FailureOrderSubmission, submissionMessage(err), err)
	}

	if err := a.transition(d.CheckoutStatusCompleted); err != nil {
		return nil, err
	}
	log.Printf("checkout attempt %s completed: user=%s method=%s total=%.2f",
		a.id, request.UserID, request.Method, snapshot.TotalAmount)

	return &CheckoutResult{
		AttemptID:     a.id,
		Status:        a.status,
		Total:         snapshot.TotalAmount,
		PaymentStatus: paymentStatus,
		RedirectTo:    confirmationPath,
	}, nil
}

// takeCartSnapshot reads the session cart and freezes it for this attempt.
func (s *CheckoutServiceImpl) takeCartSnapshot(ctx context.Context, userID string) (*d.CartSnapshot, error) {
	userCart, err := s.cart.Get(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, failed(FailureValidation, "Failed to load your cart.", err)
	}
	if len(userCart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	return userCart.Snapshot(), nil
}

// submissionMessage surfaces the backend's message verbatim when there is
// one, otherwise a generic failure message.
func submissionMessage(err error) string {
	var reqErr *backend.RequestError
	if errors.As(err, &reqErr) && reqErr.Body != "" {
		return reqErr.Body
	}
	return "Failed to place order"
}
