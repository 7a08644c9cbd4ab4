package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/pga-platform/ms-go-paypal/app/factory"
	"github.com/pga-platform/ms-go-paypal/app/gateway"
	"github.com/pga-platform/ms-go-paypal/app/mapper"
	"github.com/pga-platform/ms-go-paypal/app/repository"
	"github.com/pga-platform/ms-go-paypal/app/service"
	"github.com/pga-platform/ms-go-paypal/app/types"
)

type PayPalController struct {
	paypalService *service.PayPalService
	logger        logrus.FieldLogger
}

func NewPayPalController(paypalService *service.PayPalService) *PayPalController {
	return &PayPalController{
		paypalService: paypalService,
		logger:        factory.NewModuleLogger("paypal-controller"),
	}
}

func (c *PayPalController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

// Pay creates a checkout order for the package and sends the buyer to the
// provider's approval page.
func (c *PayPalController) Pay(ctx echo.Context) error {
	req, err := types.NewPayRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid package id")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	order, err := c.paypalService.CreateCheckoutOrder(ctx.Request().Context(), req.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPackageNotFound):
			return c.writeError(ctx, http.StatusNotFound, "package not found")
		case errors.Is(err, service.ErrPackageUnpriced), errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		default:
			return c.writeProviderOrInternalError(ctx, err, "Create order failed")
		}
	}

	if approveURL := order.ApproveLink(); approveURL != "" {
		return ctx.Redirect(http.StatusFound, approveURL)
	}
	return ctx.JSON(http.StatusOK, &types.OrderEnvelopeResponse{Order: mapper.OrderToResponse(order)})
}

// Success is the provider's return_url target: capture the approved order and
// record the payment.
func (c *PayPalController) Success(ctx echo.Context) error {
	req := types.NewSuccessRequestFromContext(ctx)
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	payment, err := c.paypalService.CaptureCheckoutOrder(ctx.Request().Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrPayerMissing):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		default:
			return c.writeProviderOrInternalError(ctx, err, "Capture order failed")
		}
	}

	return ctx.JSON(http.StatusOK, &types.PaymentEnvelopeResponse{Payment: mapper.PaymentToResponse(payment)})
}

// Cancel is the provider's cancel_url target. Nothing to do beyond
// acknowledging the buyer backed out.
func (c *PayPalController) Cancel(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Payment canceled"})
}

func (c *PayPalController) GetPayment(ctx echo.Context) error {
	req, err := types.NewGetPaymentRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.paypalService.GetPayment(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "payment not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get payment failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.PaymentEnvelopeResponse{Payment: mapper.PaymentToResponse(item)})
}

func (c *PayPalController) ListPayments(ctx echo.Context) error {
	req, err := types.NewListPaymentsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.paypalService.ListPayments(ctx.Request().Context(), repository.PaymentFilter{
		OrderID: req.OrderID,
		Status:  req.Status,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List payments failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListPaymentsResponse{Payments: mapper.PaymentsToResponse(items)})
}

func (c *PayPalController) ListPackages(ctx echo.Context) error {
	items, err := c.paypalService.ListPackages(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List packages failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListPackagesResponse{Packages: mapper.PackagesToResponse(items)})
}

// writeProviderOrInternalError passes provider rejections through with their
// original payload; everything else collapses to a generic 500.
func (c *PayPalController) writeProviderOrInternalError(ctx echo.Context, err error, logMessage string) error {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Warn(logMessage)
		return ctx.JSONBlob(http.StatusBadGateway, apiErr.Body)
	}

	factory.LoggerWithContext(c.logger, ctx).WithError(err).Error(logMessage)
	return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
}

func (c *PayPalController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
