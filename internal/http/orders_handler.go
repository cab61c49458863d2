package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopveda/storefront/internal/backend"
)

// OrdersClient is the slice of the backend client the order history uses.
type OrdersClient interface {
	ListOrders(ctx context.Context, token string) ([]backend.Order, error)
}

type OrdersHandler struct {
	ordersClient OrdersClient
	timeout      time.Duration
}

func NewOrdersHandler(client OrdersClient, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		ordersClient: client,
		timeout:      timeout,
	}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.ordersClient.ListOrders(ctx, getAuthTokenFromContext(r.Context()))
	if err != nil {
		handleBackendError(w, err)
		return
	}

	if orders == nil {
		orders = []backend.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func handleBackendError(w http.ResponseWriter, err error) {
	var reqErr *backend.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			respondError(w, reqErr.StatusCode, "unauthorized", reqErr.Error())
		case http.StatusNotFound:
			respondError(w, http.StatusNotFound, "not_found", reqErr.Error())
		default:
			respondError(w, http.StatusBadGateway, "backend_error", reqErr.Error())
		}
		return
	}
	respondError(w, http.StatusBadGateway, "backend_unavailable", "failed to reach backend")
}
