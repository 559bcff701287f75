package adapters

import (
	"context"
	"fmt"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

// Loyalty prices the cart with tier and coupon discounts and reports the
// shopper's loyalty standing.
type Loyalty struct {
	loyalty *retailapi.Loyalty
}

func NewLoyalty(loyalty *retailapi.Loyalty) *Loyalty {
	return &Loyalty{loyalty: loyalty}
}

func (a *Loyalty) Name() string { return contract.AdapterLoyalty }

func (a *Loyalty) Execute(_ context.Context, tc *contract.TurnContext) contract.Envelope {
	if tc.Subtotal <= 0 {
		return contract.Fail(a.Name(), fmt.Sprintf("%v: cart is empty", contract.ErrValidation), "")
	}

	info := a.loyalty.Info(tc.CustomerID)
	pricing := a.loyalty.Price(tc.CustomerID, tc.Subtotal, tc.CouponCode)

	var coupons []retailapi.Coupon
	if info.Tier != "" {
		coupons = a.loyalty.Coupons(info.Tier)
	}

	return contract.OK(a.Name(), contract.LoyaltyPayload{
		LoyaltyInfo:      info,
		Pricing:          pricing,
		AvailableCoupons: coupons,
	}, fmt.Sprintf("priced cart at ₹%.2f", pricing.FinalAmount))
}
