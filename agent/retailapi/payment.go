package retailapi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Payments lists payment methods and processes charges.
type Payments struct {
	methods []PaymentMethod

	// Decide approves or declines a charge. Nil approves everything; tests
	// swap it in to force the decline path.
	Decide func(amount float64, method string) (ok bool, reason string)
}

func NewPayments() *Payments {
	return &Payments{methods: seedPaymentMethods()}
}

// Methods returns the accepted payment methods.
func (p *Payments) Methods() []PaymentMethod {
	out := make([]PaymentMethod, len(p.methods))
	copy(out, p.methods)
	return out
}

// Charge processes a payment. Zero or negative amounts are rejected; unknown
// methods fall back to upi.
func (p *Payments) Charge(amount float64, method string) PaymentResult {
	if amount <= 0 {
		return PaymentResult{
			Success:       false,
			Amount:        amount,
			Method:        method,
			FailureReason: "amount must be positive",
		}
	}

	method = strings.ToLower(strings.TrimSpace(method))
	if !p.known(method) {
		method = "upi"
	}

	if p.Decide != nil {
		if ok, reason := p.Decide(amount, method); !ok {
			return PaymentResult{
				Success:       false,
				Amount:        amount,
				Method:        method,
				FailureReason: reason,
			}
		}
	}

	return PaymentResult{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN-%s", strings.ToUpper(uuid.NewString()[:8])),
		Amount:        amount,
		Method:        method,
	}
}

func (p *Payments) known(id string) bool {
	for _, m := range p.methods {
		if m.ID == id {
			return true
		}
	}
	return false
}

func seedPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "upi", Name: "UPI", Description: "Pay instantly via any UPI app"},
		{ID: "credit_card", Name: "Credit Card", Description: "Visa, Mastercard, Amex accepted", Offer: "5% cashback on HDFC cards"},
		{ID: "debit_card", Name: "Debit Card", Description: "All major banks supported"},
		{ID: "net_banking", Name: "Net Banking", Description: "40+ banks supported"},
		{ID: "cod", Name: "Cash on Delivery", Description: "Pay when your order arrives", Surcharge: 49},
		{ID: "emi", Name: "EMI", Description: "No-cost EMI on orders above ₹3000"},
	}
}
