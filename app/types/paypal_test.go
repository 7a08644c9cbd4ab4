package types

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(target string, paramNames []string, paramValues []string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if len(paramNames) > 0 {
		ctx.SetParamNames(paramNames...)
		ctx.SetParamValues(paramValues...)
	}
	return ctx
}

func TestNewPayRequestFromContext(t *testing.T) {
	ctx := newContext("/paypal/pay/7", []string{"packageId"}, []string{"7"})
	req, err := NewPayRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.PackageID != 7 {
		t.Fatalf("unexpected package id: %d", req.PackageID)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestNewPayRequestRejectsNonNumericID(t *testing.T) {
	ctx := newContext("/paypal/pay/basic", []string{"packageId"}, []string{"basic"})
	if _, err := NewPayRequestFromContext(ctx); err == nil {
		t.Fatal("expected error for non-numeric package id")
	}
}

func TestSuccessRequestReadsTokenAndPayerID(t *testing.T) {
	ctx := newContext("/paypal/success?token=ORDER-1&PayerID=P1", nil, nil)
	req := NewSuccessRequestFromContext(ctx)
	if req.OrderID != "ORDER-1" || req.PayerID != "P1" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestSuccessRequestRequiresToken(t *testing.T) {
	ctx := newContext("/paypal/success", nil, nil)
	req := NewSuccessRequestFromContext(ctx)
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestListPaymentsRequestDefaultsAndBounds(t *testing.T) {
	ctx := newContext("/paypal/payments", nil, nil)
	req, err := NewListPaymentsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Limit != 100 || req.Offset != 0 {
		t.Fatalf("unexpected defaults: %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	ctx = newContext("/paypal/payments?limit=501", nil, nil)
	req, err = NewListPaymentsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for limit above 500")
	}
}

func TestListPaymentsRequestParsesFilters(t *testing.T) {
	ctx := newContext("/paypal/payments?order_id=O1&status=COMPLETED&limit=10&offset=5", nil, nil)
	req, err := NewListPaymentsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.OrderID != "O1" || req.Status != "COMPLETED" || req.Limit != 10 || req.Offset != 5 {
		t.Fatalf("unexpected request: %+v", req)
	}
}
