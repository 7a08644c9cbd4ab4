package types

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PayRequest struct {
	PackageID uint64
}

func NewPayRequestFromContext(ctx echo.Context) (*PayRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("packageId"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &PayRequest{PackageID: id}, nil
}

func (r *PayRequest) Validate() error {
	if r.PackageID == 0 {
		return errors.New("invalid package id")
	}
	return nil
}

// SuccessRequest carries the provider's return redirect. PayPal puts the order
// id in the token query parameter; PayerID arrives alongside but identity is
// read from the capture response, not from here.
type SuccessRequest struct {
	OrderID string
	PayerID string
}

func NewSuccessRequestFromContext(ctx echo.Context) *SuccessRequest {
	return &SuccessRequest{
		OrderID: strings.TrimSpace(ctx.QueryParam("token")),
		PayerID: strings.TrimSpace(ctx.QueryParam("PayerID")),
	}
}

func (r *SuccessRequest) Validate() error {
	if r.OrderID == "" {
		return errors.New("token query parameter is required")
	}
	return nil
}

type GetPaymentRequest struct {
	ID uint64
}

func NewGetPaymentRequestFromContext(ctx echo.Context) (*GetPaymentRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &GetPaymentRequest{ID: id}, nil
}

func (r *GetPaymentRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid payment id")
	}
	return nil
}

type ListPaymentsRequest struct {
	OrderID string
	Status  string
	Limit   int32
	Offset  int32
}

func NewListPaymentsRequestFromContext(ctx echo.Context) (*ListPaymentsRequest, error) {
	req := &ListPaymentsRequest{
		OrderID: strings.TrimSpace(ctx.QueryParam("order_id")),
		Status:  strings.TrimSpace(ctx.QueryParam("status")),
		Limit:   100,
		Offset:  0,
	}

	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.ParseInt(limitRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Limit = int32(limit)
	}

	if offsetRaw := strings.TrimSpace(ctx.QueryParam("offset")); offsetRaw != "" {
		offset, err := strconv.ParseInt(offsetRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Offset = int32(offset)
	}

	return req, nil
}

func (r *ListPaymentsRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	return nil
}

type Payment struct {
	ID        uint64 `json:"id"`
	OrderID   string `json:"order_id"`
	CaptureID string `json:"capture_id,omitempty"`
	Status    string `json:"status"`
	IsSandbox bool   `json:"is_sandbox"`
	PayerID   uint64 `json:"payer_id"`
	AmountID  uint64 `json:"amount_id"`
	CreatedAt string `json:"created_at"`
}

type PaymentEnvelopeResponse struct {
	Payment *Payment `json:"payment"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}

type Order struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ApproveURL string `json:"approve_url,omitempty"`
}

type OrderEnvelopeResponse struct {
	Order *Order `json:"order"`
}

type Package struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       *Price `json:"price,omitempty"`
}

type Price struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type ListPackagesResponse struct {
	Packages []*Package `json:"packages"`
}
