package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type createPaymentIntentRequest struct {
	Amount int64 `json:"amount"`
}

type createPaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent asks the backend to open a card payment for the given
// amount in minor units and returns the provider client secret confirming it.
func (c *Client) CreatePaymentIntent(ctx context.Context, token string, amountMinor int64) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/payment/create-payment-intent", token,
		createPaymentIntentRequest{Amount: amountMinor})
	if err != nil {
		return "", fmt.Errorf("failed to call payment intent endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out createPaymentIntentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal payment intent response: %w", err)
	}
	if out.ClientSecret == "" {
		return "", errors.New("backend returned empty client secret")
	}
	return out.ClientSecret, nil
}
