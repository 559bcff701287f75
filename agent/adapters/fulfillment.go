package adapters

import (
	"context"
	"fmt"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

// Fulfillment tracks existing orders and quotes delivery options for new ones.
type Fulfillment struct {
	fulfillment *retailapi.Fulfillment
}

func NewFulfillment(fulfillment *retailapi.Fulfillment) *Fulfillment {
	return &Fulfillment{fulfillment: fulfillment}
}

func (a *Fulfillment) Name() string { return contract.AdapterFulfillment }

func (a *Fulfillment) Execute(_ context.Context, tc *contract.TurnContext) contract.Envelope {
	if tc.OrderID != "" {
		order, ok := a.fulfillment.Track(tc.OrderID)
		if !ok {
			return contract.Fail(a.Name(), fmt.Sprintf("order %s not found", tc.OrderID), "")
		}
		payload := contract.FulfillmentPayload{
			Order:      &order,
			TrackingID: order.TrackingID,
		}
		return contract.OK(a.Name(), payload, fmt.Sprintf("order %s is %s", order.OrderID, order.Status))
	}

	details := a.fulfillment.Quote(tc.FulfillmentOption, tc.DeliveryAddress)
	return contract.OK(a.Name(), contract.FulfillmentPayload{
		Details: &details,
	}, fmt.Sprintf("quoted %s fulfillment", details.Option))
}
