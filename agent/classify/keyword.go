// Package classify maps shopper utterances to intents, with an LLM classifier
// in front of a deterministic keyword fallback.
package classify

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/retail-sales-agent/server/agent/contract"
)

// Keyword is the deterministic classifier. It is the fallback behind the LLM
// classifier and the primary when no model is configured.
type Keyword struct{}

var (
	orderIDPattern   = regexp.MustCompile(`(?i)\bORD-?\w{4,}\b`)
	productIDPattern = regexp.MustCompile(`(?i)\bP\d{3}\b`)
	budgetPattern    = regexp.MustCompile(`(?:under|below|within|max|upto|up to)\s*₹?\s*(\d{3,6})`)
	quantityPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:x|pcs|pieces|pairs|of)\b`)
	couponPattern    = regexp.MustCompile(`\b([A-Z]{3,}\d{1,2})\b`)
)

func (Keyword) Classify(_ context.Context, text string, _ []contract.HistoryEntry) contract.Classification {
	lower := strings.ToLower(text)

	intent := detectIntent(lower)
	entities := extractEntities(text, lower, intent)

	return contract.Classification{
		Intent:     intent,
		Entities:   entities,
		Confidence: 0.5,
	}
}

// detectIntent checks keyword groups in priority order: transactional intents
// win over browsing so "buy these shoes" goes to the cart, not search.
func detectIntent(lower string) contract.Intent {
	switch {
	case containsAny(lower, "where is my order", "order status", "track", "delivery status", "when will", "shipped", "arrive"):
		return contract.IntentOrderStatus
	case containsAny(lower, "return", "refund", "exchange", "complaint", "damaged", "wrong item", "help with my order", "speak to"):
		return contract.IntentSupport
	case containsAny(lower, "checkout", "pay", "payment", "total", "final price", "coupon", "discount", "place order", "place the order", "buy now"):
		return contract.IntentCheckout
	case containsAny(lower, "add to cart", "add it", "add this", "add the", "put in cart", "remove from cart", "remove it", "take it out", "i'll take"):
		return contract.IntentAddToCart
	case containsAny(lower, "tell me more", "more about", "details", "what sizes", "what colors", "is it waterproof", "specs"):
		return contract.IntentProductDetails
	case containsAny(lower, "looking for", "show me", "find", "search", "recommend", "suggest", "need a", "need some", "want to buy", "shoes", "jacket", "t-shirt", "tshirt", "jeans", "watch", "backpack", "sweater"):
		return contract.IntentProductSearch
	default:
		return contract.IntentGeneral
	}
}

func extractEntities(text, lower string, intent contract.Intent) map[string]any {
	entities := make(map[string]any)

	if m := budgetPattern.FindStringSubmatch(lower); m != nil {
		if budget, err := strconv.ParseFloat(m[1], 64); err == nil {
			entities[contract.EntityBudget] = budget
		}
	}
	if ids := productIDPattern.FindAllString(text, -1); len(ids) > 0 {
		for i := range ids {
			ids[i] = strings.ToUpper(ids[i])
		}
		entities[contract.EntityProductIDs] = ids
	}
	if m := orderIDPattern.FindString(text); m != "" {
		entities[contract.EntityOrderID] = strings.ToUpper(m)
	}
	if m := quantityPattern.FindStringSubmatch(lower); m != nil {
		if qty, err := strconv.Atoi(m[1]); err == nil {
			entities[contract.EntityQuantity] = qty
		}
	}
	if intent == contract.IntentCheckout {
		if m := couponPattern.FindString(text); m != "" {
			entities[contract.EntityCouponCode] = m
		}
	}
	if category := detectCategory(lower); category != "" {
		entities[contract.EntityCategory] = category
	}
	if containsAny(lower, "remove", "take it out", "take out") {
		entities[contract.EntityAction] = "remove"
	}

	return entities
}

func detectCategory(lower string) string {
	switch {
	case containsAny(lower, "shoe", "sneaker", "running", "hiking"):
		return "shoes"
	case containsAny(lower, "jacket", "raincoat"):
		return "jackets"
	case containsAny(lower, "t-shirt", "tshirt", "tee"):
		return "tshirts"
	case containsAny(lower, "jeans", "denim"):
		return "jeans"
	case containsAny(lower, "watch"):
		return "watches"
	case containsAny(lower, "backpack", "bag"):
		return "backpacks"
	case containsAny(lower, "sweater", "wool"):
		return "sweaters"
	default:
		return ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
