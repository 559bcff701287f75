package adapters

import (
	"context"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

// Payment lists the accepted payment methods for checkout.
type Payment struct {
	payments *retailapi.Payments
}

func NewPayment(payments *retailapi.Payments) *Payment {
	return &Payment{payments: payments}
}

func (a *Payment) Name() string { return contract.AdapterPayment }

func (a *Payment) Execute(_ context.Context, _ *contract.TurnContext) contract.Envelope {
	return contract.OK(a.Name(), contract.PaymentPayload{
		PaymentMethods: a.payments.Methods(),
	}, "payment methods listed")
}
