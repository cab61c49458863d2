package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopveda/storefront/domain"
	"github.com/shopveda/storefront/internal/cart"
)

type CartHandler struct {
	store   cart.Store
	timeout time.Duration
}

func NewCartHandler(store cart.Store, timeout time.Duration) *CartHandler {
	return &CartHandler{
		store:   store,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	userCart, err := h.store.Get(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		respondJSON(w, http.StatusOK, domain.NewCart(userID))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, userCart)
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	userCart, err := h.store.Get(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		userCart = domain.NewCart(userID)
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to load cart")
		return
	}

	if err := userCart.AddLine(domain.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
	}); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	}

	if err := h.store.Save(ctx, userCart); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusCreated, userCart)
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "missing_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	userCart, err := h.store.Get(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "cart is empty")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to load cart")
		return
	}

	if err := userCart.UpdateQuantity(productID, req.Quantity); err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	if err := h.store.Save(ctx, userCart); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusOK, userCart)
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")
	userCart, err := h.store.Get(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "cart is empty")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to load cart")
		return
	}

	if err := userCart.RemoveLine(productID); err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	if err := h.store.Save(ctx, userCart); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusOK, userCart)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.store.Delete(ctx, userID); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func getUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value("user_id").(string); ok {
		return userID
	}
	return ""
}

func getAuthTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value("auth_token").(string); ok {
		return token
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}
