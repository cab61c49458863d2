package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopveda/storefront/domain"
	"github.com/shopveda/storefront/internal/cart"
	"github.com/shopveda/storefront/internal/service"
)

type CheckoutHandler struct {
	service service.CheckoutService
	store   cart.Store
	timeout time.Duration
}

func NewCheckoutHandler(svc service.CheckoutService, store cart.Store, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		store:   store,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	ShippingInfo  domain.ShippingInfo `json:"shipping_info"`
	PaymentMethod string              `json:"payment_method"`
}

type CheckoutResponseDTO struct {
	AttemptID     string  `json:"attempt_id"`
	Status        string  `json:"status"`
	Total         float64 `json:"total"`
	PaymentStatus string  `json:"payment_status"`
	RedirectTo    string  `json:"redirect_to"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	method, ok := parsePaymentMethod(req.PaymentMethod)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must be \"stripe\" or \"cod\"")
		return
	}

	result, err := h.service.PlaceOrder(ctx, &service.CheckoutRequest{
		UserID:       userID,
		Token:        getAuthTokenFromContext(r.Context()),
		ShippingInfo: req.ShippingInfo,
		Method:       method,
	})
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	// the order is recorded; an undeleted cart only means stale session state
	if err := h.store.Delete(ctx, userID); err != nil {
		log.Printf("failed to clear cart for user %s after checkout: %v", userID, err)
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		AttemptID:     result.AttemptID,
		Status:        result.Status.String(),
		Total:         result.Total,
		PaymentStatus: string(result.PaymentStatus),
		RedirectTo:    result.RedirectTo,
	})
}

func parsePaymentMethod(s string) (domain.PaymentMethod, bool) {
	switch strings.ToLower(s) {
	case "stripe":
		return domain.PaymentMethodStripe, true
	case "cod":
		return domain.PaymentMethodCOD, true
	default:
		return "", false
	}
}

// handleCheckoutError converts checkout failures to HTTP responses. The
// attempt's message goes out verbatim so the client can show it inline and
// keep the form state for a retry.
func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCheckoutInProgress):
		respondError(w, http.StatusConflict, "checkout_in_progress", err.Error())
		return
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
		return
	case errors.Is(err, service.ErrUnknownPaymentMethod):
		respondError(w, http.StatusBadRequest, "invalid_payment_method", err.Error())
		return
	}

	var attemptErr *service.AttemptError
	if errors.As(err, &attemptErr) {
		switch attemptErr.Kind {
		case service.FailureValidation:
			respondError(w, http.StatusBadRequest, "validation_error", attemptErr.Message)
		case service.FailureProvider:
			respondError(w, http.StatusPaymentRequired, "payment_declined", attemptErr.Message)
		default:
			respondError(w, http.StatusBadGateway, strings.ToLower(string(attemptErr.Kind)), attemptErr.Message)
		}
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
