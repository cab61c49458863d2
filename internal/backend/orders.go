package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopveda/storefront/domain"
)

// Order is one order record as the backend returns it.
type Order struct {
	ID            string              `json:"_id"`
	Items         []domain.OrderItem  `json:"items"`
	ShippingInfo  domain.ShippingInfo `json:"shippingInfo"`
	PaymentMethod string              `json:"paymentMethod"`
	PaymentStatus string              `json:"paymentStatus"`
	Status        string              `json:"status"`
	Total         float64             `json:"total"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// SubmitOrder sends one order-creation request. The payload is already final;
// this call sends it exactly once and never mutates it.
func (c *Client) SubmitOrder(ctx context.Context, token string, order *domain.OrderRequest) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/orders", token, order)
	if err != nil {
		return fmt.Errorf("failed to call orders endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// ListOrders fetches the caller's order history.
func (c *Client) ListOrders(ctx context.Context, token string) ([]Order, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/orders/my-orders", token, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call orders endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var orders []Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
	}
	return orders, nil
}
