package mapper

import (
	"time"

	"github.com/pga-platform/ms-go-paypal/app/entity"
	"github.com/pga-platform/ms-go-paypal/app/gateway"
	"github.com/pga-platform/ms-go-paypal/app/types"
)

func PaymentToResponse(item *entity.Payment) *types.Payment {
	if item == nil {
		return nil
	}

	return &types.Payment{
		ID:        item.ID,
		OrderID:   item.OrderID,
		CaptureID: derefString(item.CaptureID),
		Status:    item.Status,
		IsSandbox: item.IsSandbox,
		PayerID:   item.PayerID,
		AmountID:  item.AmountID,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func PaymentsToResponse(items []*entity.Payment) []*types.Payment {
	result := make([]*types.Payment, 0, len(items))
	for _, item := range items {
		result = append(result, PaymentToResponse(item))
	}
	return result
}

func OrderToResponse(order *gateway.Order) *types.Order {
	if order == nil {
		return nil
	}
	return &types.Order{
		ID:         order.ID,
		Status:     order.Status,
		ApproveURL: order.ApproveLink(),
	}
}

func PackageToResponse(item *entity.Package) *types.Package {
	if item == nil {
		return nil
	}

	result := &types.Package{
		ID:          item.ID,
		Name:        item.Name,
		Description: derefString(item.Description),
	}
	if item.ActivePrice != nil {
		result.Price = &types.Price{
			Amount:   item.ActivePrice.Amount.StringFixed(2),
			Currency: item.ActivePrice.Currency,
		}
	}
	return result
}

func PackagesToResponse(items []*entity.Package) []*types.Package {
	result := make([]*types.Package, 0, len(items))
	for _, item := range items {
		result = append(result, PackageToResponse(item))
	}
	return result
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
