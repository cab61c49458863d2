package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrInvalidClientSecret = errors.New("invalid client secret")

// StripeClient confirms card payments against the provider's HTTP API.
type StripeClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewStripeClient(baseURL, secretKey string, timeout time.Duration) *StripeClient {
	return &StripeClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type confirmRequest struct {
	ClientSecret   string         `json:"client_secret"`
	BillingDetails BillingDetails `json:"billing_details"`
}

type confirmErrorBody struct {
	Error *Error `json:"error"`
}

// ConfirmCardPayment confirms the payment intent behind the client secret.
// A decline comes back as ConfirmResult.Error, not as a Go error; Go errors
// mean the provider could not be reached or answered out of contract.
func (c *StripeClient) ConfirmCardPayment(ctx context.Context, clientSecret string, details BillingDetails) (*ConfirmResult, error) {
	intentID, ok := intentIDFromSecret(clientSecret)
	if !ok {
		return nil, ErrInvalidClientSecret
	}

	data, err := json.Marshal(confirmRequest{ClientSecret: clientSecret, BillingDetails: details})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirm request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/payment_intents/%s/confirm", c.baseURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build confirm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var intent PaymentIntent
		if err := json.Unmarshal(body, &intent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment intent: %w", err)
		}
		return &ConfirmResult{PaymentIntent: &intent}, nil

	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusBadRequest:
		// declines and card errors carry an error object
		var errBody confirmErrorBody
		if err := json.Unmarshal(body, &errBody); err != nil || errBody.Error == nil {
			return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
		}
		return &ConfirmResult{Error: errBody.Error}, nil

	default:
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}
}

// intentIDFromSecret extracts the payment-intent id from a client secret of
// the form "<intent id>_secret_<nonce>".
func intentIDFromSecret(clientSecret string) (string, bool) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", false
	}
	return id, true
}
