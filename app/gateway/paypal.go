package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"

	oauthEndpoint    = "/v1/oauth2/token"
	checkoutEndpoint = "/v2/checkout/orders"

	successPath = "/paypal/success"
	cancelPath  = "/paypal/cancel"
)

var ErrMissingAccessToken = errors.New("paypal token response contains no access token")

type Config struct {
	ClientID       string
	Secret         string
	Sandbox        bool
	BackendBaseURL string
	HTTPTimeout    time.Duration
}

// Client talks to the PayPal REST API. A fresh access token is fetched for
// every operation; nothing is cached between calls.
type Client struct {
	cfg    Config
	client *http.Client

	// overridden in tests
	baseURL string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := liveBaseURL
	if cfg.Sandbox {
		baseURL = sandboxBaseURL
	}

	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// APIError carries a provider error response verbatim. The body is not
// translated into a domain error; callers that want the raw payload read Body.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal request failed: status=%d body=%s", e.StatusCode, string(e.Body))
}

// AccessToken performs the client-credentials exchange. An empty or absent
// access_token field is a terminal failure for the current operation; there is
// no retry.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	values := url.Values{}
	values.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+oauthEndpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}

	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return "", ErrMissingAccessToken
	}
	return token, nil
}

// CreateOrder opens a checkout session for a single purchase unit. The value
// must already be a fixed-point string with exactly two decimal digits.
func (c *Client) CreateOrder(ctx context.Context, currency, value string) (*Order, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	backendURL := strings.TrimRight(c.cfg.BackendBaseURL, "/")
	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{{
			"amount": map[string]string{
				"currency_code": currency,
				"value":         value,
			},
		}},
		"application_context": map[string]string{
			"return_url": backendURL + successPath,
			"cancel_url": backendURL + cancelPath,
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkoutEndpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, err
	}
	order.Raw = body
	return &order, nil
}

// CaptureOrder captures a previously approved order. Whether the order is in a
// capturable state is not validated locally; provider rejections come back as
// an *APIError.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	captureURL := c.baseURL + checkoutEndpoint + "/" + url.PathEscape(orderID) + "/capture"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result CaptureResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	result.Raw = body
	return &result, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
