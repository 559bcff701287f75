package aggregate

import (
	"testing"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

func TestMergeFillsSlotsAndAnnotatesStock(t *testing.T) {
	t.Parallel()

	envelopes := []contract.Envelope{
		contract.OK(contract.AdapterRecommendation, contract.RecommendationPayload{
			Recommendations: []retailapi.RankedProduct{
				{Product: retailapi.Product{ID: "P001", Name: "AeroStride Running Shoes"}},
				{Product: retailapi.Product{ID: "P011", Name: "SwiftPace Marathon Shoes"}},
				{Product: retailapi.Product{ID: "P005", Name: "AlpinePeak Down Jacket"}},
			},
		}, ""),
		contract.OK(contract.AdapterInventory, contract.InventoryPayload{
			Inventory: []retailapi.InventoryEntry{
				{ProductID: "P001", InStock: true, OnlineStock: 24, Sizes: []string{"8", "9"}},
				{ProductID: "P011", InStock: false, OnlineStock: 0},
				{ProductID: "P005", InStock: true, OnlineStock: 4},
			},
		}, ""),
	}

	result := Merge(envelopes)

	if len(result.Products) != 3 {
		t.Fatalf("products = %d, want 3", len(result.Products))
	}
	if got := result.Products[0].StockStatus; got != "in_stock" {
		t.Fatalf("P001 status = %q", got)
	}
	if got := result.Products[1].StockStatus; got != "out_of_stock" {
		t.Fatalf("P011 status = %q", got)
	}
	if got := result.Products[2].StockStatus; got != "low_stock" {
		t.Fatalf("P005 status = %q", got)
	}
	if len(result.Products[0].StockedSizes) != 2 {
		t.Fatalf("P001 sizes = %v", result.Products[0].StockedSizes)
	}
}

func TestMergeIgnoresFailedEnvelopes(t *testing.T) {
	t.Parallel()

	result := Merge([]contract.Envelope{
		contract.Fail(contract.AdapterLoyalty, "upstream down", ""),
		contract.OK(contract.AdapterPayment, contract.PaymentPayload{
			PaymentMethods: []retailapi.PaymentMethod{{ID: "upi", Name: "UPI"}},
		}, ""),
	})

	if result.Pricing != nil || result.LoyaltyInfo != nil {
		t.Fatal("failed loyalty envelope populated its slot")
	}
	if len(result.PaymentMethods) != 1 {
		t.Fatalf("payment methods = %d, want 1", len(result.PaymentMethods))
	}
}

func TestMergeOrderIndependentForDistinctSlots(t *testing.T) {
	t.Parallel()

	loyalty := contract.OK(contract.AdapterLoyalty, contract.LoyaltyPayload{
		LoyaltyInfo: retailapi.LoyaltyInfo{CustomerID: "CUST002", Tier: retailapi.TierGold},
		Pricing:     retailapi.PricingBreakdown{Subtotal: 5000, FinalAmount: 4250},
	}, "")
	payment := contract.OK(contract.AdapterPayment, contract.PaymentPayload{
		PaymentMethods: []retailapi.PaymentMethod{{ID: "upi"}},
	}, "")

	a := Merge([]contract.Envelope{loyalty, payment})
	b := Merge([]contract.Envelope{payment, loyalty})

	if a.Pricing.FinalAmount != b.Pricing.FinalAmount {
		t.Fatal("merge result depends on envelope order")
	}
	if len(a.PaymentMethods) != len(b.PaymentMethods) {
		t.Fatal("merge result depends on envelope order")
	}
}

func TestMergeUnknownAdapterDropped(t *testing.T) {
	t.Parallel()

	result := Merge([]contract.Envelope{
		contract.OK("astrology", map[string]any{"sign": "libra"}, ""),
	})

	if result.Products != nil || result.Support != nil || result.Pricing != nil {
		t.Fatalf("unknown adapter leaked into result: %+v", result)
	}
}
