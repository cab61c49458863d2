package service

import (
	"context"
	"sync"

	d "github.com/shopveda/storefront/domain"
	"github.com/shopveda/storefront/internal/cart"
	"github.com/shopveda/storefront/internal/provider"
)

// callRecorder captures the order of downstream calls across mocks so tests
// can assert intent -> confirm -> submit sequencing.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *callRecorder) sequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// MockCartReader implements CartReader for testing
type MockCartReader struct {
	Cart *d.Cart
	Err  error
}

func (m *MockCartReader) Get(_ context.Context, _ string) (*d.Cart, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Cart == nil {
		return nil, cart.ErrCartNotFound
	}
	return m.Cart, nil
}

// MockBackend implements BackendClient for testing
type MockBackend struct {
	rec *callRecorder

	ClientSecret string
	IntentErr    error
	SubmitErr    error

	IntentAmount   int64
	IntentToken    string
	SubmitToken    string
	SubmittedOrder *d.OrderRequest

	// SubmitStarted/SubmitRelease let a test hold an attempt mid-flight
	SubmitStarted chan struct{}
	SubmitRelease chan struct{}
	startOnce     sync.Once
}

func (m *MockBackend) CreatePaymentIntent(_ context.Context, token string, amountMinor int64) (string, error) {
	m.rec.record("create_intent")
	m.IntentToken = token
	m.IntentAmount = amountMinor
	if m.IntentErr != nil {
		return "", m.IntentErr
	}
	return m.ClientSecret, nil
}

func (m *MockBackend) SubmitOrder(_ context.Context, token string, order *d.OrderRequest) error {
	if m.SubmitStarted != nil {
		m.startOnce.Do(func() { close(m.SubmitStarted) })
	}
	if m.SubmitRelease != nil {
		<-m.SubmitRelease
	}
	m.rec.record("submit_order")
	m.SubmitToken = token
	m.SubmittedOrder = order
	return m.SubmitErr
}

// MockConfirmer implements provider.CardConfirmer for testing
type MockConfirmer struct {
	rec *callRecorder

	Result *provider.ConfirmResult
	Err    error

	GotSecret  string
	GotDetails provider.BillingDetails
}

func (m *MockConfirmer) ConfirmCardPayment(_ context.Context, clientSecret string, details provider.BillingDetails) (*provider.ConfirmResult, error) {
	m.rec.record("confirm")
	m.GotSecret = clientSecret
	m.GotDetails = details
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
