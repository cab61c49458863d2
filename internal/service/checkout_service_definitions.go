package service

import (
	"context"
	"sync"

	d "github.com/shopveda/storefront/domain"
	"github.com/shopveda/storefront/internal/provider"
)

// CheckoutRequest is one user submission of the checkout form.
type CheckoutRequest struct {
	UserID       string
	Token        string // bearer token forwarded to the backend
	ShippingInfo d.ShippingInfo
	Method       d.PaymentMethod
}

// CheckoutResult is a completed attempt.
type CheckoutResult struct {
	AttemptID     string
	Status        d.CheckoutStatus
	Total         float64
	PaymentStatus d.PaymentStatus
	RedirectTo    string
}

// CartReader is the read-only view of the session cart the checkout takes
// its snapshot from.
type CartReader interface {
	Get(ctx context.Context, userID string) (*d.Cart, error)
}

// BackendClient is the slice of the REST backend used at checkout.
type BackendClient interface {
	CreatePaymentIntent(ctx context.Context, token string, amountMinor int64) (string, error)
	SubmitOrder(ctx context.Context, token string, order *d.OrderRequest) error
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, request *CheckoutRequest) (*CheckoutResult, error)
}

type CheckoutServiceImpl struct {
	cart     CartReader
	backend  BackendClient
	provider provider.CardConfirmer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(cart CartReader, backend BackendClient, confirmer provider.CardConfirmer) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		cart:     cart,
		backend:  backend,
		provider: confirmer,
		inFlight: make(map[string]struct{}),
	}
}

// begin marks the user's checkout as in flight. It is the loading flag that
// gates re-entrancy: while one attempt runs, new submissions are rejected.
func (s *CheckoutServiceImpl) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.inFlight[userID]; running {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *CheckoutServiceImpl) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
