package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	d "github.com/shopveda/storefront/domain"
	"github.com/shopveda/storefront/internal/backend"
	"github.com/shopveda/storefront/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCart() *d.Cart {
	c := d.NewCart("user-1")
	_ = c.AddLine(d.CartLine{ProductID: "p1", Name: "Mug", Price: 10.0, Quantity: 2})
	return c
}

func testShipping() d.ShippingInfo {
	return d.ShippingInfo{
		Name:    "Asha Verma",
		Email:   "asha@example.com",
		Phone:   "555-0101",
		Address: "12 Market Road",
	}
}

func newFixture(cartReader *MockCartReader) (*CheckoutServiceImpl, *MockBackend, *MockConfirmer, *callRecorder) {
	rec := &callRecorder{}
	backendMock := &MockBackend{rec: rec, ClientSecret: "pi_123_secret_456"}
	confirmer := &MockConfirmer{
		rec:    rec,
		Result: &provider.ConfirmResult{PaymentIntent: &provider.PaymentIntent{ID: "pi_123", Status: provider.StatusSucceeded}},
	}
	svc := NewCheckoutService(cartReader, backendMock, confirmer)
	return svc, backendMock, confirmer, rec
}

func TestPlaceOrder_ValidationBlocksAllNetworkCalls(t *testing.T) {
	svc, _, _, rec := newFixture(&MockCartReader{Cart: testCart()})

	shipping := testShipping()
	shipping.Address = "   "

	result, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: shipping, Method: d.PaymentMethodStripe,
	})

	require.Error(t, err)
	assert.Nil(t, result)

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, FailureValidation, attemptErr.Kind)
	assert.ErrorIs(t, err, d.ErrMissingShippingField)
	assert.Empty(t, rec.sequence(), "no network call may happen on validation failure")
}

func TestPlaceOrder_CODSubmitsPendingOrder(t *testing.T) {
	svc, backendMock, _, rec := newFixture(&MockCartReader{Cart: testCart()})

	result, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodCOD,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"submit_order"}, rec.sequence())

	order := backendMock.SubmittedOrder
	require.NotNil(t, order)
	assert.Equal(t, d.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, d.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 20.0, order.Total)
	require.Len(t, order.CartItems, 1)
	assert.Equal(t, "p1", order.CartItems[0].ProductID)
	assert.Equal(t, "tok", backendMock.SubmitToken)

	assert.Equal(t, d.CheckoutStatusCompleted, result.Status)
	assert.Equal(t, d.PaymentStatusPending, result.PaymentStatus)
	assert.Equal(t, 20.0, result.Total)
	assert.Equal(t, "/thankyou", result.RedirectTo)
	assert.NotEmpty(t, result.AttemptID)
}

func TestPlaceOrder_CardFlowOrderingAndAmounts(t *testing.T) {
	svc, backendMock, confirmer, rec := newFixture(&MockCartReader{Cart: testCart()})

	result, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodStripe,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"create_intent", "confirm", "submit_order"}, rec.sequence())

	// provider amount in minor units, order total in major units
	assert.Equal(t, int64(2000), backendMock.IntentAmount)
	assert.Equal(t, 20.0, backendMock.SubmittedOrder.Total)

	assert.Equal(t, "pi_123_secret_456", confirmer.GotSecret)
	assert.Equal(t, "Asha Verma", confirmer.GotDetails.Name)
	assert.Equal(t, "asha@example.com", confirmer.GotDetails.Email)

	assert.Equal(t, d.PaymentStatusPaid, backendMock.SubmittedOrder.PaymentStatus)
	assert.Equal(t, d.PaymentMethodStripe, backendMock.SubmittedOrder.PaymentMethod)
	assert.Equal(t, d.PaymentStatusPaid, result.PaymentStatus)
}

func TestPlaceOrder_IntentFailureStopsBeforeConfirm(t *testing.T) {
	svc, backendMock, _, rec := newFixture(&MockCartReader{Cart: testCart()})
	backendMock.IntentErr = &backend.RequestError{StatusCode: http.StatusBadRequest, Body: "amount too small"}

	result, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodStripe,
	})

	require.Error(t, err)
	assert.Nil(t, result)

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, FailureIntentRequest, attemptErr.Kind)
	assert.Equal(t, "amount too small", attemptErr.Message)
	assert.Equal(t, []string{"create_intent"}, rec.sequence(), "no confirmation or order submission after intent failure")
}

func TestPlaceOrder_ProviderDeclineStopsBeforeSubmit(t *testing.T) {
	svc, _, confirmer, rec := newFixture(&MockCartReader{Cart: testCart()})
	confirmer.Result = &provider.ConfirmResult{Error: &provider.Error{Code: "card_declined", Message: "Your card was declined."}}

	_, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodStripe,
	})

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, FailureProvider, attemptErr.Kind)
	assert.Equal(t, "Your card was declined.", attemptErr.Message)
	assert.Equal(t, []string{"create_intent", "confirm"}, rec.sequence())
}

func TestPlaceOrder_UnexpectedProviderStatus(t *testing.T) {
	svc, _, confirmer, rec := newFixture(&MockCartReader{Cart: testCart()})
	confirmer.Result = &provider.ConfirmResult{PaymentIntent: &provider.PaymentIntent{ID: "pi_123", Status: "processing"}}

	_, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodStripe,
	})

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, FailureUnexpectedStatus, attemptErr.Kind)
	assert.Equal(t, "Unexpected payment status.", attemptErr.Message)
	assert.Equal(t, []string{"create_intent", "confirm"}, rec.sequence())
}

func TestPlaceOrder_SubmissionFailureSurfacesBody(t *testing.T) {
	svc, backendMock, _, _ := newFixture(&MockCartReader{Cart: testCart()})
	backendMock.SubmitErr = &backend.RequestError{StatusCode: http.StatusInternalServerError, Body: "order rejected"}

	_, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodCOD,
	})

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, FailureOrderSubmission, attemptErr.Kind)
	assert.Equal(t, "order rejected", attemptErr.Message)
}

func TestPlaceOrder_SubmissionFailureGenericMessage(t *testing.T) {
	svc, backendMock, _, _ := newFixture(&MockCartReader{Cart: testCart()})
	backendMock.SubmitErr = errors.New("connection reset")

	_, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodCOD,
	})

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, "Failed to place order", attemptErr.Message)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	tests := []struct {
		name   string
		reader *MockCartReader
	}{
		{"no cart stored", &MockCartReader{}},
		{"cart with no items", &MockCartReader{Cart: d.NewCart("user-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, rec := newFixture(tt.reader)

			_, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
				UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodCOD,
			})

			assert.ErrorIs(t, err, ErrEmptyCart)
			assert.Empty(t, rec.sequence())
		})
	}
}

func TestPlaceOrder_UnknownPaymentMethod(t *testing.T) {
	svc, _, _, _ := newFixture(&MockCartReader{Cart: testCart()})

	_, err := svc.PlaceOrder(context.Background(), &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: "Bitcoin",
	})

	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
}

func TestPlaceOrder_ResubmissionAfterFailureIsFreshAttempt(t *testing.T) {
	svc, backendMock, confirmer, rec := newFixture(&MockCartReader{Cart: testCart()})
	confirmer.Result = &provider.ConfirmResult{Error: &provider.Error{Message: "Your card was declined."}}

	req := &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodStripe,
	}

	_, err := svc.PlaceOrder(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, backendMock.SubmittedOrder)

	// user retries with a working card
	confirmer.Result = &provider.ConfirmResult{PaymentIntent: &provider.PaymentIntent{Status: provider.StatusSucceeded}}

	result, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, d.CheckoutStatusCompleted, result.Status)

	// second attempt ran the full sequence independently
	assert.Equal(t, []string{"create_intent", "confirm", "create_intent", "confirm", "submit_order"}, rec.sequence())
}

func TestPlaceOrder_RejectsConcurrentAttempt(t *testing.T) {
	svc, backendMock, _, _ := newFixture(&MockCartReader{Cart: testCart()})
	backendMock.SubmitStarted = make(chan struct{})
	backendMock.SubmitRelease = make(chan struct{})

	req := &CheckoutRequest{
		UserID: "user-1", Token: "tok", ShippingInfo: testShipping(), Method: d.PaymentMethodCOD,
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.PlaceOrder(context.Background(), req)
		done <- err
	}()

	select {
	case <-backendMock.SubmitStarted:
	case <-time.After(time.Second):
		t.Fatal("first attempt never reached order submission")
	}

	_, err := svc.PlaceOrder(context.Background(), req)
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(backendMock.SubmitRelease)
	require.NoError(t, <-done)

	// the gate is released after the attempt finishes
	_, err = svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
}
