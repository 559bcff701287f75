// Package aggregate merges adapter envelopes into the turn's slotted result.
package aggregate

import (
	"github.com/rs/zerolog/log"

	"github.com/retail-sales-agent/server/agent/contract"
)

// Merge folds envelopes into an AggregateResult. Each adapter owns exactly
// one slot, so merge order cannot change the outcome; failed envelopes leave
// their slot empty. When both products and inventory are present, products
// are annotated in place with their stock summary.
func Merge(envelopes []contract.Envelope) *contract.AggregateResult {
	result := &contract.AggregateResult{}

	for _, env := range envelopes {
		if !env.Success {
			log.Debug().Str("adapter", env.Agent).Str("error", env.Err).Msg("skipping failed envelope")
			continue
		}

		switch env.Agent {
		case contract.AdapterRecommendation:
			if p, ok := env.Payload.(contract.RecommendationPayload); ok {
				result.Products = p.Recommendations
			}
		case contract.AdapterInventory:
			if p, ok := env.Payload.(contract.InventoryPayload); ok {
				result.Inventory = p.Inventory
				result.NearbyStores = p.NearbyStores
			}
		case contract.AdapterPayment:
			if p, ok := env.Payload.(contract.PaymentPayload); ok {
				result.PaymentMethods = p.PaymentMethods
			}
		case contract.AdapterLoyalty:
			if p, ok := env.Payload.(contract.LoyaltyPayload); ok {
				info := p.LoyaltyInfo
				pricing := p.Pricing
				result.LoyaltyInfo = &info
				result.Pricing = &pricing
				result.AvailableCoupons = p.AvailableCoupons
			}
		case contract.AdapterFulfillment:
			if p, ok := env.Payload.(contract.FulfillmentPayload); ok {
				result.Fulfillment = p.Details
				result.Order = p.Order
				result.TrackingID = p.TrackingID
			}
		case contract.AdapterSupport:
			if p, ok := env.Payload.(contract.SupportPayload); ok {
				payload := p
				result.Support = &payload
			}
		default:
			log.Warn().Str("adapter", env.Agent).Msg("envelope from unknown adapter dropped")
		}
	}

	annotateStock(result)
	return result
}

// annotateStock stamps each recommended product with its availability.
func annotateStock(result *contract.AggregateResult) {
	if len(result.Products) == 0 || len(result.Inventory) == 0 {
		return
	}

	byID := make(map[string]int, len(result.Inventory))
	for i, entry := range result.Inventory {
		byID[entry.ProductID] = i
	}

	for i := range result.Products {
		idx, ok := byID[result.Products[i].ID]
		if !ok {
			continue
		}
		entry := result.Inventory[idx]
		result.Products[i].StockStatus = stockStatus(entry.InStock, entry.OnlineStock)
		result.Products[i].StockedSizes = entry.Sizes
	}
}

func stockStatus(inStock bool, online int) string {
	switch {
	case !inStock:
		return "out_of_stock"
	case online > 0 && online < 5:
		return "low_stock"
	default:
		return "in_stock"
	}
}
