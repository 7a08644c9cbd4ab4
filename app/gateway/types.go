package gateway

import (
	"encoding/json"
	"strings"
)

// Order is the decoded response of an order-creation call. Raw holds the
// undecoded body so callers can pass the provider payload through untouched.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []Link `json:"links"`

	Raw json.RawMessage `json:"-"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// ApproveLink returns the URL the buyer must visit to approve the order, or ""
// when the provider sent no such link.
func (o *Order) ApproveLink() string {
	for _, link := range o.Links {
		if link.Rel == "approve" || link.Rel == "approval_url" {
			return link.Href
		}
	}
	return ""
}

// CaptureResult is the decoded response of a capture call. Optional
// sub-structures are pointers or slices; anything the provider omits stays nil.
type CaptureResult struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	Payer         *Payer         `json:"payer"`
	PaymentSource *PaymentSource `json:"payment_source"`

	Raw json.RawMessage `json:"-"`
}

type PurchaseUnit struct {
	ReferenceID string                `json:"reference_id"`
	Payments    *PurchaseUnitPayments `json:"payments"`
}

type PurchaseUnitPayments struct {
	Captures []Capture `json:"captures"`
}

type Capture struct {
	ID                        string               `json:"id"`
	Status                    string               `json:"status"`
	Amount                    *Money               `json:"amount"`
	SellerReceivableBreakdown *ReceivableBreakdown `json:"seller_receivable_breakdown"`
}

type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type ReceivableBreakdown struct {
	GrossAmount      *Money        `json:"gross_amount"`
	PayPalFee        *Money        `json:"paypal_fee"`
	NetAmount        *Money        `json:"net_amount"`
	ReceivableAmount *Money        `json:"receivable_amount"`
	ExchangeRate     *ExchangeRate `json:"exchange_rate"`
}

type ExchangeRate struct {
	SourceCurrency string `json:"source_currency"`
	TargetCurrency string `json:"target_currency"`
	Value          string `json:"value"`
}

type Payer struct {
	PayerID      string     `json:"payer_id"`
	EmailAddress string     `json:"email_address"`
	Name         *PayerName `json:"name"`
	Address      *Address   `json:"address"`
}

type PayerName struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

// FullName joins given name and surname, tolerating either being absent.
func (p *Payer) FullName() string {
	if p.Name == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(p.Name.GivenName) + " " + strings.TrimSpace(p.Name.Surname))
}

type Address struct {
	CountryCode string `json:"country_code"`
}

type PaymentSource struct {
	PayPal *PayPalSource `json:"paypal"`
}

type PayPalSource struct {
	AccountStatus string `json:"account_status"`
}

// FirstCapture walks purchase_units[0].payments.captures[0], returning nil at
// the first absent hop.
func (r *CaptureResult) FirstCapture() *Capture {
	if len(r.PurchaseUnits) == 0 {
		return nil
	}
	payments := r.PurchaseUnits[0].Payments
	if payments == nil || len(payments.Captures) == 0 {
		return nil
	}
	return &payments.Captures[0]
}

// AccountStatus returns payment_source.paypal.account_status when present.
func (r *CaptureResult) AccountStatus() string {
	if r.PaymentSource == nil || r.PaymentSource.PayPal == nil {
		return ""
	}
	return r.PaymentSource.PayPal.AccountStatus
}
