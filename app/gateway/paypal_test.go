package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubProvider struct {
	tokenCalls   int
	orderCalls   int
	captureCalls int

	tokenStatus   int
	tokenBody     string
	orderBody     string
	captureBody   string
	captureStatus int

	lastAuth        string
	lastContentType string
	lastTokenForm   string
	lastOrderBody   []byte
	lastCapturePath string
	lastCaptureBody []byte
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		tokenStatus:   http.StatusOK,
		tokenBody:     `{"access_token":"A21AA-token","token_type":"Bearer","expires_in":32400}`,
		orderBody:     `{"id":"ORDER-1","status":"CREATED","links":[{"href":"https://www.sandbox.paypal.com/checkoutnow?token=ORDER-1","rel":"approve","method":"GET"}]}`,
		captureBody:   `{"id":"ORDER-1","status":"COMPLETED"}`,
		captureStatus: http.StatusCreated,
	}
}

func (s *stubProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		s.tokenCalls++
		s.lastAuth = r.Header.Get("Authorization")
		s.lastContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		s.lastTokenForm = string(body)
		w.WriteHeader(s.tokenStatus)
		_, _ = w.Write([]byte(s.tokenBody))
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		s.orderCalls++
		s.lastAuth = r.Header.Get("Authorization")
		s.lastOrderBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(s.orderBody))
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		s.captureCalls++
		s.lastAuth = r.Header.Get("Authorization")
		s.lastCapturePath = r.URL.Path
		s.lastCaptureBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(s.captureStatus)
		_, _ = w.Write([]byte(s.captureBody))
	})
	return mux
}

func newTestClient(t *testing.T, stub *stubProvider) *Client {
	t.Helper()
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	client := NewClient(Config{
		ClientID:       "client-id",
		Secret:         "client-secret",
		Sandbox:        true,
		BackendBaseURL: "https://backend.example.com",
	})
	client.baseURL = server.URL
	return client
}

func TestAccessTokenUsesBasicAuthAndFormBody(t *testing.T) {
	stub := newStubProvider()
	client := newTestClient(t, stub)

	token, err := client.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("access token failed: %v", err)
	}
	if token != "A21AA-token" {
		t.Fatalf("unexpected token: %s", token)
	}
	if stub.lastTokenForm != "grant_type=client_credentials" {
		t.Fatalf("unexpected token form body: %s", stub.lastTokenForm)
	}
	if stub.lastContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type: %s", stub.lastContentType)
	}
	// Basic Y2xpZW50LWlkOmNsaWVudC1zZWNyZXQ=
	if stub.lastAuth != "Basic Y2xpZW50LWlkOmNsaWVudC1zZWNyZXQ=" {
		t.Fatalf("unexpected authorization header: %s", stub.lastAuth)
	}
}

func TestAccessTokenIsNotCachedBetweenCalls(t *testing.T) {
	stub := newStubProvider()
	client := newTestClient(t, stub)

	if _, err := client.AccessToken(context.Background()); err != nil {
		t.Fatalf("first access token failed: %v", err)
	}
	if _, err := client.AccessToken(context.Background()); err != nil {
		t.Fatalf("second access token failed: %v", err)
	}
	if stub.tokenCalls != 2 {
		t.Fatalf("expected 2 token requests, got %d", stub.tokenCalls)
	}
}

func TestAccessTokenMissingFieldIsTerminal(t *testing.T) {
	stub := newStubProvider()
	stub.tokenBody = `{"token_type":"Bearer"}`
	client := newTestClient(t, stub)

	_, err := client.AccessToken(context.Background())
	if !errors.Is(err, ErrMissingAccessToken) {
		t.Fatalf("expected ErrMissingAccessToken, got %v", err)
	}
}

func TestAccessTokenRejectedCredentials(t *testing.T) {
	stub := newStubProvider()
	stub.tokenStatus = http.StatusUnauthorized
	stub.tokenBody = `{"error":"invalid_client"}`
	client := newTestClient(t, stub)

	_, err := client.AccessToken(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if string(apiErr.Body) != `{"error":"invalid_client"}` {
		t.Fatalf("expected verbatim provider body, got %s", apiErr.Body)
	}
}

func TestCreateOrderBodyAndCallbackURLs(t *testing.T) {
	stub := newStubProvider()
	client := newTestClient(t, stub)

	order, err := client.CreateOrder(context.Background(), "USD", "9.99")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ID != "ORDER-1" {
		t.Fatalf("unexpected order id: %s", order.ID)
	}
	if order.ApproveLink() != "https://www.sandbox.paypal.com/checkoutnow?token=ORDER-1" {
		t.Fatalf("unexpected approve link: %s", order.ApproveLink())
	}
	if stub.tokenCalls != 1 {
		t.Fatalf("expected a fresh token fetch, got %d token calls", stub.tokenCalls)
	}
	if stub.lastAuth != "Bearer A21AA-token" {
		t.Fatalf("unexpected authorization header: %s", stub.lastAuth)
	}

	var body struct {
		Intent        string `json:"intent"`
		PurchaseUnits []struct {
			Amount struct {
				CurrencyCode string `json:"currency_code"`
				Value        string `json:"value"`
			} `json:"amount"`
		} `json:"purchase_units"`
		ApplicationContext struct {
			ReturnURL string `json:"return_url"`
			CancelURL string `json:"cancel_url"`
		} `json:"application_context"`
	}
	if err := json.Unmarshal(stub.lastOrderBody, &body); err != nil {
		t.Fatalf("order body is not json: %v", err)
	}
	if body.Intent != "CAPTURE" {
		t.Fatalf("unexpected intent: %s", body.Intent)
	}
	if len(body.PurchaseUnits) != 1 {
		t.Fatalf("expected one purchase unit, got %d", len(body.PurchaseUnits))
	}
	if body.PurchaseUnits[0].Amount.CurrencyCode != "USD" || body.PurchaseUnits[0].Amount.Value != "9.99" {
		t.Fatalf("unexpected amount: %+v", body.PurchaseUnits[0].Amount)
	}
	if body.ApplicationContext.ReturnURL != "https://backend.example.com/paypal/success" {
		t.Fatalf("unexpected return url: %s", body.ApplicationContext.ReturnURL)
	}
	if body.ApplicationContext.CancelURL != "https://backend.example.com/paypal/cancel" {
		t.Fatalf("unexpected cancel url: %s", body.ApplicationContext.CancelURL)
	}
}

func TestCaptureOrderPostsEmptyJSONBody(t *testing.T) {
	stub := newStubProvider()
	stub.captureBody = `{"id":"ORDER-1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP-1","status":"COMPLETED","amount":{"currency_code":"USD","value":"9.99"}}]}}],"payer":{"payer_id":"PAYER-1"}}`
	client := newTestClient(t, stub)

	result, err := client.CaptureOrder(context.Background(), "ORDER-1")
	if err != nil {
		t.Fatalf("capture order failed: %v", err)
	}
	if stub.lastCapturePath != "/v2/checkout/orders/ORDER-1/capture" {
		t.Fatalf("unexpected capture path: %s", stub.lastCapturePath)
	}
	if len(stub.lastCaptureBody) != 0 {
		t.Fatalf("expected empty capture body, got %s", stub.lastCaptureBody)
	}

	capture := result.FirstCapture()
	if capture == nil {
		t.Fatal("expected a capture in the response")
	}
	if capture.ID != "CAP-1" || capture.Amount == nil || capture.Amount.Value != "9.99" {
		t.Fatalf("unexpected capture: %+v", capture)
	}
	if string(result.Raw) != stub.captureBody {
		t.Fatal("expected Raw to hold the verbatim response body")
	}
}

func TestCaptureOrderProviderErrorIsReturnedVerbatim(t *testing.T) {
	stub := newStubProvider()
	stub.captureStatus = http.StatusUnprocessableEntity
	stub.captureBody = `{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"ORDER_NOT_APPROVED"}]}`
	client := newTestClient(t, stub)

	_, err := client.CaptureOrder(context.Background(), "ORDER-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if string(apiErr.Body) != stub.captureBody {
		t.Fatalf("expected verbatim provider error body, got %s", apiErr.Body)
	}
}

func TestFirstCaptureDegradesToNil(t *testing.T) {
	var result CaptureResult
	if err := json.Unmarshal([]byte(`{"id":"ORDER-2","status":"COMPLETED"}`), &result); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if result.FirstCapture() != nil {
		t.Fatal("expected nil capture for absent purchase units")
	}
	if result.AccountStatus() != "" {
		t.Fatal("expected empty account status for absent payment source")
	}
	if result.Payer != nil {
		t.Fatal("expected nil payer")
	}
}
