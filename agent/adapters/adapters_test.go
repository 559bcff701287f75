package adapters

import (
	"context"
	"testing"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
	"github.com/retail-sales-agent/server/agent/state"
)

func testRegistry() *Registry {
	return Default(
		retailapi.NewCatalog(),
		retailapi.NewInventory(),
		retailapi.NewPayments(),
		retailapi.NewLoyalty(),
		retailapi.NewFulfillment(),
	)
}

func TestRegistryResolvesFullSet(t *testing.T) {
	t.Parallel()

	r := testRegistry()
	for _, name := range []string{
		contract.AdapterRecommendation,
		contract.AdapterInventory,
		contract.AdapterPayment,
		contract.AdapterLoyalty,
		contract.AdapterFulfillment,
		contract.AdapterSupport,
	} {
		a, ok := r.Adapter(name)
		if !ok {
			t.Fatalf("adapter %q not registered", name)
		}
		if a.Name() != name {
			t.Fatalf("adapter %q reports name %q", name, a.Name())
		}
	}

	if _, ok := r.Adapter("astrology"); ok {
		t.Fatal("unknown adapter resolved")
	}

	names := r.Names()
	if len(names) != 6 {
		t.Fatalf("names = %v, want 6 entries", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestRecommendationSearchAndDirectLookup(t *testing.T) {
	t.Parallel()

	a := NewRecommendation(retailapi.NewCatalog())

	env := a.Execute(context.Background(), &contract.TurnContext{
		Query: "running shoes", Category: "shoes", Budget: 5000,
	})
	if !env.Success {
		t.Fatalf("search failed: %s", env.Err)
	}
	payload := env.Payload.(contract.RecommendationPayload)
	if payload.Count == 0 {
		t.Fatal("no recommendations for running shoes under 5000")
	}
	for _, r := range payload.Recommendations {
		if r.Price > 5000 {
			t.Fatalf("%s over budget at %v", r.ID, r.Price)
		}
	}

	env = a.Execute(context.Background(), &contract.TurnContext{ProductIDs: []string{"P009", "NOPE"}})
	payload = env.Payload.(contract.RecommendationPayload)
	if payload.Count != 1 || payload.Recommendations[0].ID != "P009" {
		t.Fatalf("direct lookup = %+v", payload)
	}
}

func TestInventoryFallsBackToCart(t *testing.T) {
	t.Parallel()

	a := NewInventory(retailapi.NewInventory())

	cart := &state.Cart{}
	cart.Add(state.CartItem{ProductID: "P001", Price: 3999, Quantity: 1})

	env := a.Execute(context.Background(), &contract.TurnContext{Cart: cart})
	if !env.Success {
		t.Fatalf("cart fallback failed: %s", env.Err)
	}
	payload := env.Payload.(contract.InventoryPayload)
	if len(payload.Inventory) != 1 || payload.Inventory[0].ProductID != "P001" {
		t.Fatalf("inventory = %+v", payload.Inventory)
	}

	env = a.Execute(context.Background(), &contract.TurnContext{})
	if env.Success {
		t.Fatal("empty context should fail validation")
	}
}

func TestLoyaltyPricesCart(t *testing.T) {
	t.Parallel()

	a := NewLoyalty(retailapi.NewLoyalty())

	env := a.Execute(context.Background(), &contract.TurnContext{
		CustomerID: "CUST001", Subtotal: 10000,
	})
	if !env.Success {
		t.Fatalf("loyalty failed: %s", env.Err)
	}
	payload := env.Payload.(contract.LoyaltyPayload)
	if payload.Pricing.FinalAmount != 9000 {
		t.Fatalf("final = %v, want 9000", payload.Pricing.FinalAmount)
	}
	if payload.LoyaltyInfo.Tier != retailapi.TierSilver {
		t.Fatalf("tier = %q", payload.LoyaltyInfo.Tier)
	}
	if len(payload.AvailableCoupons) == 0 {
		t.Fatal("no coupons offered to a tiered member")
	}

	env = a.Execute(context.Background(), &contract.TurnContext{CustomerID: "CUST001"})
	if env.Success {
		t.Fatal("empty cart should fail validation")
	}
}

func TestFulfillmentTrackAndQuote(t *testing.T) {
	t.Parallel()

	a := NewFulfillment(retailapi.NewFulfillment())

	env := a.Execute(context.Background(), &contract.TurnContext{OrderID: "ORD-1001"})
	if !env.Success {
		t.Fatalf("track failed: %s", env.Err)
	}
	payload := env.Payload.(contract.FulfillmentPayload)
	if payload.Order == nil || payload.Order.Status != "shipped" {
		t.Fatalf("order = %+v", payload.Order)
	}
	if payload.TrackingID == "" {
		t.Fatal("no tracking id for shipped order")
	}

	env = a.Execute(context.Background(), &contract.TurnContext{OrderID: "ORD-9999"})
	if env.Success {
		t.Fatal("unknown order tracked")
	}

	env = a.Execute(context.Background(), &contract.TurnContext{FulfillmentOption: retailapi.FulfillExpress})
	payload = env.Payload.(contract.FulfillmentPayload)
	if payload.Details == nil || payload.Details.Option != retailapi.FulfillExpress {
		t.Fatalf("quote = %+v", payload.Details)
	}
}

func TestSupportActions(t *testing.T) {
	t.Parallel()

	a := NewSupport(retailapi.NewCatalog(), retailapi.NewFulfillment())

	env := a.Execute(context.Background(), &contract.TurnContext{
		Query: "I want to return this", OrderID: "ORD-1002",
	})
	payload := env.Payload.(contract.SupportPayload)
	if payload.Action != SupportReturn || payload.ReturnDetails == nil || !payload.ReturnDetails.Eligible {
		t.Fatalf("return payload = %+v", payload)
	}

	env = a.Execute(context.Background(), &contract.TurnContext{Query: "let me talk to a human"})
	payload = env.Payload.(contract.SupportPayload)
	if payload.Action != SupportEscalate {
		t.Fatalf("action = %q, want escalate", payload.Action)
	}

	env = a.Execute(context.Background(), &contract.TurnContext{
		Query: "what goes with these", ProductIDs: []string{"P001"},
	})
	payload = env.Payload.(contract.SupportPayload)
	if payload.Action != SupportSuggest || len(payload.Recommendations) == 0 {
		t.Fatalf("suggest payload = %+v", payload)
	}
}
