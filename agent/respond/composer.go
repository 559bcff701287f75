// Package respond turns an aggregate result into the reply the shopper sees.
package respond

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/retail-sales-agent/server/agent/contract"
)

// Apology is the reply of last resort for internal faults.
const Apology = "I apologize, but I encountered an issue processing your request. Please try again."

// Composer produces reply text. When a renderer is configured it gets the
// first attempt; any renderer error or empty output falls back to the
// deterministic per-intent template, so composition never fails a turn.
type Composer struct {
	renderer contract.Renderer
}

// NewComposer builds a composer. A nil renderer means templates only.
func NewComposer(renderer contract.Renderer) *Composer {
	return &Composer{renderer: renderer}
}

func (c *Composer) Compose(ctx context.Context, intent contract.Intent, userText string, result *contract.AggregateResult) string {
	if c.renderer != nil {
		text, err := c.renderer.Render(ctx, intent, userText, result)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		if err != nil {
			log.Warn().Err(err).Str("intent", string(intent)).Msg("renderer failed, using template")
		}
	}
	return Template(intent, result)
}

// Template renders the deterministic reply for an intent.
func Template(intent contract.Intent, result *contract.AggregateResult) string {
	switch intent {
	case contract.IntentProductSearch, contract.IntentProductDetails:
		return productTemplate(result)
	case contract.IntentAddToCart:
		return cartTemplate(result)
	case contract.IntentCheckout:
		return checkoutTemplate(result)
	case contract.IntentOrderStatus:
		return orderStatusTemplate(result)
	case contract.IntentSupport:
		return supportTemplate(result)
	default:
		return productTemplate(result)
	}
}

func productTemplate(result *contract.AggregateResult) string {
	if len(result.Products) == 0 {
		return "I couldn't find products matching your request. Could you tell me more about what you're looking for?"
	}

	var b strings.Builder
	b.WriteString("Here's what I found for you:\n")
	for i, p := range result.Products {
		fmt.Fprintf(&b, "%d. %s by %s - ₹%.2f (%.1f★)", i+1, p.Name, p.Brand, p.Price, p.Rating)
		switch p.StockStatus {
		case "out_of_stock":
			b.WriteString(" [currently out of stock online]")
		case "low_stock":
			b.WriteString(" [only a few left]")
		}
		b.WriteString("\n")
	}
	if len(result.NearbyStores) > 0 {
		fmt.Fprintf(&b, "You can also try them on at %s.", result.NearbyStores[0].Name)
	} else {
		b.WriteString("Want more details on any of these?")
	}
	return b.String()
}

func cartTemplate(result *contract.AggregateResult) string {
	if len(result.Inventory) == 0 {
		return "I've updated your cart."
	}

	for _, entry := range result.Inventory {
		if !entry.InStock {
			return fmt.Sprintf("Sorry, %s is currently out of stock online. Want me to check nearby stores?", entry.ProductID)
		}
	}
	return "Added to your cart! Anything else, or shall we head to checkout?"
}

func checkoutTemplate(result *contract.AggregateResult) string {
	var b strings.Builder
	b.WriteString("Here's your order summary:\n")

	if p := result.Pricing; p != nil {
		fmt.Fprintf(&b, "Subtotal: ₹%.2f\n", p.Subtotal)
		if p.TierDiscount > 0 {
			fmt.Fprintf(&b, "%s member discount: -₹%.2f\n", p.Tier, p.TierDiscount)
		}
		if p.CouponDiscount > 0 {
			fmt.Fprintf(&b, "Coupon %s: -₹%.2f\n", p.CouponApplied, p.CouponDiscount)
		}
		fmt.Fprintf(&b, "Total: ₹%.2f\n", p.FinalAmount)
		if p.PointsEarned > 0 {
			fmt.Fprintf(&b, "You'll earn %d loyalty points on this order.\n", p.PointsEarned)
		}
	} else {
		b.WriteString("Your cart is ready for checkout.\n")
	}

	if len(result.PaymentMethods) > 0 {
		names := make([]string, 0, len(result.PaymentMethods))
		for _, m := range result.PaymentMethods {
			names = append(names, m.Name)
		}
		fmt.Fprintf(&b, "You can pay via %s.", strings.Join(names, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func orderStatusTemplate(result *contract.AggregateResult) string {
	if o := result.Order; o != nil {
		var b strings.Builder
		fmt.Fprintf(&b, "Your order %s is %s.", o.OrderID, o.Status)
		if o.EstimatedDate != "" && o.Status != "delivered" {
			fmt.Fprintf(&b, " Expected by %s.", o.EstimatedDate)
		}
		if o.LastLocation != "" {
			fmt.Fprintf(&b, " Last seen: %s.", o.LastLocation)
		}
		if o.TrackingID != "" {
			fmt.Fprintf(&b, " Track it with id %s.", o.TrackingID)
		}
		return b.String()
	}

	f := result.Fulfillment
	if f == nil {
		return "I couldn't find that order. Could you double-check the order id?"
	}

	var b strings.Builder
	if f.EstimatedDays == 0 {
		b.WriteString("Your order is ready for store pickup.")
	} else {
		fmt.Fprintf(&b, "Your order is on its way, arriving in about %d day(s).", f.EstimatedDays)
	}
	if result.TrackingID != "" {
		fmt.Fprintf(&b, " Track it with id %s.", result.TrackingID)
	}
	return b.String()
}

func supportTemplate(result *contract.AggregateResult) string {
	if result.Support == nil || strings.TrimSpace(result.Support.Message) == "" {
		return "I'm here to help. Could you tell me a bit more about the issue?"
	}
	return result.Support.Message
}
