package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pga-platform/ms-go-paypal/app/entity"
	"github.com/pga-platform/ms-go-paypal/app/gateway"
	"github.com/pga-platform/ms-go-paypal/app/repository"
)

const defaultListLimit = int32(100)

type paypalGateway interface {
	CreateOrder(ctx context.Context, currency, value string) (*gateway.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*gateway.CaptureResult, error)
}

type packageRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.Package, error)
	List(ctx context.Context) ([]*entity.Package, error)
}

type payerRepository interface {
	FindOrCreate(ctx context.Context, payer *entity.Payer) (*entity.Payer, error)
}

type amountRepository interface {
	Create(ctx context.Context, amount *entity.Amount) error
}

type paymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uint64) (*entity.Payment, error)
	List(ctx context.Context, filter repository.PaymentFilter) ([]*entity.Payment, error)
}

type paymentLogRepository interface {
	Create(ctx context.Context, log *entity.PaymentLog) error
}

// PayPalService mediates all interaction with PayPal and translates capture
// responses into persisted payment state.
type PayPalService struct {
	gw          paypalGateway
	packageRepo packageRepository
	payerRepo   payerRepository
	amountRepo  amountRepository
	paymentRepo paymentRepository
	logRepo     paymentLogRepository
	sandbox     bool
}

func NewPayPalService(
	gw paypalGateway,
	packageRepo packageRepository,
	payerRepo payerRepository,
	amountRepo amountRepository,
	paymentRepo paymentRepository,
	logRepo paymentLogRepository,
	sandbox bool,
) *PayPalService {
	return &PayPalService{
		gw:          gw,
		packageRepo: packageRepo,
		payerRepo:   payerRepo,
		amountRepo:  amountRepo,
		paymentRepo: paymentRepo,
		logRepo:     logRepo,
		sandbox:     sandbox,
	}
}

// CreateCheckoutOrder opens a provider checkout session for the package's
// active price. The amount is rendered as a fixed-point string with exactly
// two decimal digits, no grouping.
func (s *PayPalService) CreateCheckoutOrder(ctx context.Context, packageID uint64) (*gateway.Order, error) {
	if packageID == 0 {
		return nil, ErrInvalidRequest
	}

	pkg, err := s.packageRepo.FindByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if pkg.ActivePrice == nil {
		return nil, ErrPackageUnpriced
	}

	value := pkg.ActivePrice.Amount.StringFixed(2)
	return s.gw.CreateOrder(ctx, pkg.ActivePrice.Currency, value)
}

// CaptureCheckoutOrder captures an approved order and records the result.
// Provider rejections (order not approved, already captured) pass through
// unmodified as *gateway.APIError.
func (s *PayPalService) CaptureCheckoutOrder(ctx context.Context, orderID string) (*entity.Payment, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidRequest
	}

	result, err := s.gw.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.RecordCapturedPayment(ctx, result)
}

// RecordCapturedPayment persists the payer, amount, payment and audit log for
// one capture response. A response without a payer identity is rejected before
// anything is written. The three inserts are not wrapped in a transaction;
// a failure mid-sequence leaves the earlier rows in place.
func (s *PayPalService) RecordCapturedPayment(ctx context.Context, result *gateway.CaptureResult) (*entity.Payment, error) {
	if result == nil {
		return nil, ErrInvalidRequest
	}
	if result.Payer == nil || strings.TrimSpace(result.Payer.PayerID) == "" {
		return nil, ErrPayerMissing
	}

	now := time.Now().UTC()
	capture := result.FirstCapture()

	payer, err := s.payerRepo.FindOrCreate(ctx, &entity.Payer{
		PayPalAccountID: result.Payer.PayerID,
		Email:           optionalString(result.Payer.EmailAddress),
		Name:            optionalString(result.Payer.FullName()),
		CountryCode:     payerCountryCode(result.Payer),
		Status:          optionalString(result.AccountStatus()),
		CreatedAt:       now,
	})
	if err != nil {
		return nil, err
	}

	amount := amountFromCapture(capture)
	amount.CreatedAt = now
	if err := s.amountRepo.Create(ctx, amount); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		OrderID:   result.ID,
		Status:    entity.PaymentStatusCompleted,
		IsSandbox: s.sandbox,
		PayerID:   payer.ID,
		AmountID:  amount.ID,
		CreatedAt: now,
	}
	if capture != nil {
		payment.CaptureID = optionalString(capture.ID)
		if strings.TrimSpace(capture.Status) != "" {
			payment.Status = capture.Status
		}
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.logRepo.Create(ctx, &entity.PaymentLog{
		PaymentID: payment.ID,
		Type:      entity.PaymentLogTypeCaptureOrder,
		Payload:   string(result.Raw),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *PayPalService) GetPayment(ctx context.Context, id uint64) (*entity.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PayPalService) ListPayments(ctx context.Context, filter repository.PaymentFilter) ([]*entity.Payment, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.paymentRepo.List(ctx, filter)
}

func (s *PayPalService) ListPackages(ctx context.Context) ([]*entity.Package, error) {
	return s.packageRepo.List(ctx)
}

func amountFromCapture(capture *gateway.Capture) *entity.Amount {
	amount := &entity.Amount{}
	if capture == nil {
		return amount
	}

	if capture.Amount != nil {
		amount.Currency = optionalString(capture.Amount.CurrencyCode)
		amount.GrossAmount = optionalString(capture.Amount.Value)
	}

	breakdown := capture.SellerReceivableBreakdown
	if breakdown == nil {
		return amount
	}
	amount.PayPalFee = moneyValue(breakdown.PayPalFee)
	amount.NetAmount = moneyValue(breakdown.NetAmount)
	amount.ReceivableAmount = moneyValue(breakdown.ReceivableAmount)
	if breakdown.ExchangeRate != nil {
		amount.ExchangeRate = optionalString(breakdown.ExchangeRate.Value)
		amount.SourceCurrency = optionalString(breakdown.ExchangeRate.SourceCurrency)
	}

	return amount
}

func payerCountryCode(payer *gateway.Payer) *string {
	if payer.Address == nil {
		return nil
	}
	return optionalString(payer.Address.CountryCode)
}

func moneyValue(m *gateway.Money) *string {
	if m == nil {
		return nil
	}
	return optionalString(m.Value)
}

func optionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
