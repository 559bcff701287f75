package orchestrator

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
	"github.com/retail-sales-agent/server/agent/state"
)

// wantsOrderPlacement reports whether the shopper is confirming the order
// rather than just asking about pricing or payment.
func wantsOrderPlacement(tc *contract.TurnContext) bool {
	if tc.Action == "place_order" || tc.Action == "confirm" {
		return true
	}
	lower := strings.ToLower(tc.Query)
	return strings.Contains(lower, "place order") ||
		strings.Contains(lower, "place the order") ||
		strings.Contains(lower, "place my order") ||
		strings.Contains(lower, "confirm order") ||
		strings.Contains(lower, "confirm my order")
}

// applyCartOps mutates the session cart for an add_to_cart turn and returns
// the reply text. Items are only added when inventory reported them in stock.
func (s *Service) applyCartOps(ts *turnState) string {
	cart := &ts.session.Cart

	if ts.tc.Action == "remove" {
		removed := 0
		for _, id := range ts.tc.ProductIDs {
			if cart.Remove(id) {
				removed++
			}
		}
		if removed == 0 {
			return "I couldn't find that item in your cart. It currently has " + cartSummary(ts) + "."
		}
		if len(cart.Items) == 0 {
			return "Done, your cart is now empty."
		}
		return fmt.Sprintf("Removed. Your cart now totals ₹%.2f.", cart.Subtotal)
	}

	if len(ts.tc.ProductIDs) == 0 {
		return "Which product would you like to add? You can give me its name or id."
	}

	inStock := make(map[string]bool)
	for _, entry := range ts.result.Inventory {
		inStock[entry.ProductID] = entry.InStock
	}

	var added, unavailable []string
	for _, id := range ts.tc.ProductIDs {
		product, ok := s.backends.Catalog.Get(id)
		if !ok {
			unavailable = append(unavailable, id)
			continue
		}
		if stocked, checked := inStock[id]; checked && !stocked {
			unavailable = append(unavailable, product.Name)
			continue
		}
		cart.Add(cartItem(product, ts.tc))
		added = append(added, product.Name)
	}

	switch {
	case len(added) > 0 && len(unavailable) > 0:
		return fmt.Sprintf("Added %s to your cart (₹%.2f total). %s unavailable right now.",
			strings.Join(added, ", "), cart.Subtotal, strings.Join(unavailable, ", "))
	case len(added) > 0:
		return fmt.Sprintf("Added %s to your cart. Your total is ₹%.2f. Ready to checkout?",
			strings.Join(added, ", "), cart.Subtotal)
	default:
		return fmt.Sprintf("Sorry, %s is not available right now. Want me to suggest alternatives?",
			strings.Join(unavailable, ", "))
	}
}

// placeOrder runs the confirmation flow: reserve stock, charge payment,
// award points, register fulfillment, clear the cart. Each step failing
// leaves the cart intact and returns an explanatory reply.
func (s *Service) placeOrder(ts *turnState) string {
	cart := &ts.session.Cart
	if len(cart.Items) == 0 {
		return "Your cart is empty, so there's nothing to order yet. Want to browse some products?"
	}

	pricing := ts.result.Pricing
	if pricing == nil {
		p := s.backends.Loyalty.Price(ts.session.CustomerID, cart.Subtotal, ts.tc.CouponCode)
		pricing = &p
		ts.result.Pricing = pricing
	}

	ids := cart.ProductIDs()
	if !s.backends.Inventory.Reserve(ids) {
		return "Some items in your cart just went out of stock, so I couldn't place the order. Want me to check nearby stores?"
	}

	method, _ := ts.tc.Extra["payment_method"].(string)
	payment := s.backends.Payments.Charge(pricing.FinalAmount, method)
	if !payment.Success {
		return fmt.Sprintf("The payment didn't go through (%s). Your cart is untouched, want to try another method?", payment.FailureReason)
	}

	balance := s.backends.Loyalty.AwardPoints(ts.session.CustomerID, pricing.PointsEarned)

	details := s.backends.Fulfillment.Quote(ts.tc.FulfillmentOption, ts.tc.DeliveryAddress)
	order := s.backends.Fulfillment.Place(ids, pricing.FinalAmount, details)

	cart.Clear()

	ts.result.Order = &order
	ts.result.Fulfillment = &details
	ts.result.TrackingID = order.TrackingID

	log.Info().
		Str("session_id", ts.session.SessionID).
		Str("order_id", order.OrderID).
		Str("transaction_id", payment.TransactionID).
		Float64("amount", payment.Amount).
		Msg("order placed")

	reply := fmt.Sprintf("Order %s placed! You paid ₹%.2f via %s.", order.OrderID, payment.Amount, payment.Method)
	if pricing.PointsEarned > 0 {
		reply += fmt.Sprintf(" You earned %d loyalty points", pricing.PointsEarned)
		if balance > 0 {
			reply += fmt.Sprintf(" (balance: %d)", balance)
		}
		reply += "."
	}
	if order.EstimatedDate != "" {
		reply += fmt.Sprintf(" Expected delivery by %s, tracking id %s.", order.EstimatedDate, order.TrackingID)
	}
	return reply
}

func cartItem(product retailapi.Product, tc *contract.TurnContext) state.CartItem {
	qty := tc.Quantity
	if qty <= 0 {
		qty = 1
	}
	return state.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  qty,
		Size:      tc.Size,
		Color:     tc.Color,
	}
}

func cartSummary(ts *turnState) string {
	n := len(ts.session.Cart.Items)
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}
