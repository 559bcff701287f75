package state

import (
	"context"
	"testing"
	"time"

	"github.com/retail-sales-agent/server/agent/retailapi"
)

func TestCartAddMergeRemove(t *testing.T) {
	t.Parallel()

	var cart Cart
	cart.Add(CartItem{ProductID: "P001", Name: "AeroStride Running Shoes", Price: 3999, Quantity: 1, Size: "9"})
	cart.Add(CartItem{ProductID: "P001", Name: "AeroStride Running Shoes", Price: 3999, Quantity: 1, Size: "9"})
	cart.Add(CartItem{ProductID: "P006", Name: "CottonCrew Basic T-Shirt", Price: 799, Quantity: 2})

	if len(cart.Items) != 2 {
		t.Fatalf("lines = %d, want 2 (same size merges)", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("merged quantity = %d, want 2", cart.Items[0].Quantity)
	}
	if want := 3999.0*2 + 799*2; cart.Subtotal != want {
		t.Fatalf("subtotal = %v, want %v", cart.Subtotal, want)
	}

	if !cart.Remove("P001") {
		t.Fatal("remove P001 reported nothing removed")
	}
	if cart.Subtotal != 1598 {
		t.Fatalf("subtotal after remove = %v, want 1598", cart.Subtotal)
	}

	cart.Remove("P006")
	if cart.Subtotal != 0 || len(cart.Items) != 0 {
		t.Fatalf("cart not empty after removing everything: %+v", cart)
	}
}

func TestNewSessionGuestIdentity(t *testing.T) {
	t.Parallel()

	s := NewSession("", "", time.Now())
	if s.SessionID == "" {
		t.Fatal("empty session id")
	}
	if len(s.CustomerID) != len("GUEST_")+8 || s.CustomerID[:6] != "GUEST_" {
		t.Fatalf("customer id = %q, want GUEST_ prefix with 8 chars", s.CustomerID)
	}

	s2 := NewSession("sess-1", "CUST001", time.Now())
	if s2.SessionID != "sess-1" || s2.CustomerID != "CUST001" {
		t.Fatalf("explicit ids not preserved: %+v", s2)
	}
}

func TestMergeEntitiesSkipsEmpty(t *testing.T) {
	t.Parallel()

	s := NewSession("sess-2", "CUST001", time.Now())
	s.MergeEntities(map[string]any{"category": "shoes", "budget": 4000.0})
	s.MergeEntities(map[string]any{"category": "", "location": "Bengaluru", "coupon_code": nil})

	if s.Entities["category"] != "shoes" {
		t.Fatalf("empty value overwrote category: %v", s.Entities["category"])
	}
	if s.Entities["location"] != "Bengaluru" {
		t.Fatalf("location not merged: %v", s.Entities["location"])
	}
	if _, ok := s.Entities["coupon_code"]; ok {
		t.Fatal("nil value merged")
	}
}

func TestAppendAndRecentHistory(t *testing.T) {
	t.Parallel()

	s := NewSession("sess-h", "CUST001", time.Now())
	for i := 0; i < 5; i++ {
		s.Append(RoleUser, "hi", nil, time.Now())
		s.Append(RoleAgent, "hello", []retailapi.RankedProduct{
			{Product: retailapi.Product{ID: "P001"}},
		}, time.Now())
	}

	if len(s.History) != 10 {
		t.Fatalf("history = %d entries, want 10", len(s.History))
	}
	if s.History[0].Products != nil {
		t.Fatal("user entry carries products")
	}
	if len(s.History[1].Products) != 1 {
		t.Fatalf("agent entry products = %v", s.History[1].Products)
	}

	recent := s.RecentHistory(4)
	if len(recent) != 4 {
		t.Fatalf("recent = %d entries, want 4", len(recent))
	}
	if recent[0].Role != RoleUser || recent[3].Role != RoleAgent {
		t.Fatalf("recent roles = %s..%s", recent[0].Role, recent[3].Role)
	}

	if got := s.RecentHistory(100); len(got) != 10 {
		t.Fatalf("oversized window = %d entries, want full history", len(got))
	}
	if got := s.RecentHistory(0); len(got) != 10 {
		t.Fatalf("zero window = %d entries, want full history", len(got))
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(WithTTL(time.Hour))
	current := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	session := NewSession("sess-3", "CUST002", current)
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := store.Load(ctx, "sess-3"); err != nil {
		t.Fatalf("load before expiry: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := store.Load(ctx, "sess-3"); err == nil {
		t.Fatal("expired session loaded")
	}

	if _, err := store.Load(ctx, "missing"); err == nil {
		t.Fatal("unknown session loaded")
	}
}

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	session := NewSession("sess-4", "CUST003", time.Now())
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	session.Cart.Add(CartItem{ProductID: "P001", Price: 3999, Quantity: 1})

	loaded, err := store.Load(ctx, "sess-4")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Cart.Items) != 0 {
		t.Fatal("mutation after save leaked into the store")
	}
}
