package exec

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/plan"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

type fakeAdapter struct {
	name    string
	execute func(ctx context.Context, tc *contract.TurnContext) contract.Envelope
	calls   atomic.Int32
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Execute(ctx context.Context, tc *contract.TurnContext) contract.Envelope {
	f.calls.Add(1)
	return f.execute(ctx, tc)
}

type fakeRegistry map[string]contract.Adapter

func (r fakeRegistry) Adapter(name string) (contract.Adapter, bool) {
	a, ok := r[name]
	return a, ok
}

func okAdapter(name string) *fakeAdapter {
	return &fakeAdapter{name: name, execute: func(context.Context, *contract.TurnContext) contract.Envelope {
		return contract.OK(name, nil, "")
	}}
}

func TestRunBarrierOrder(t *testing.T) {
	t.Parallel()

	rec := &fakeAdapter{name: contract.AdapterRecommendation}
	inv := &fakeAdapter{name: contract.AdapterInventory}
	rec.execute = func(context.Context, *contract.TurnContext) contract.Envelope {
		return contract.OK(rec.name, contract.RecommendationPayload{
			Recommendations: []retailapi.RankedProduct{
				{Product: retailapi.Product{ID: "P001"}},
				{Product: retailapi.Product{ID: "P003"}},
			},
		}, "")
	}
	inv.execute = func(_ context.Context, tc *contract.TurnContext) contract.Envelope {
		if rec.calls.Load() != 1 {
			t.Error("inventory ran before recommendation settled")
		}
		if len(tc.ProductIDs) != 2 || tc.ProductIDs[0] != "P001" {
			t.Errorf("candidates not propagated: %v", tc.ProductIDs)
		}
		return contract.OK(inv.name, nil, "")
	}

	h := New(fakeRegistry{rec.name: rec, inv.name: inv})
	tc := &contract.TurnContext{Intent: contract.IntentProductSearch}
	results := h.Run(context.Background(), plan.For(contract.IntentProductSearch), tc)

	if len(results) != 2 {
		t.Fatalf("envelopes = %d, want 2", len(results))
	}
	if results[0].Agent != contract.AdapterRecommendation || results[1].Agent != contract.AdapterInventory {
		t.Fatalf("order = %s, %s", results[0].Agent, results[1].Agent)
	}
}

func TestRunSkipsConditionalGroupWithoutCandidates(t *testing.T) {
	t.Parallel()

	rec := &fakeAdapter{name: contract.AdapterRecommendation}
	rec.execute = func(context.Context, *contract.TurnContext) contract.Envelope {
		return contract.OK(rec.name, contract.RecommendationPayload{}, "no matches")
	}
	inv := okAdapter(contract.AdapterInventory)

	h := New(fakeRegistry{rec.name: rec, inv.name: inv})
	tc := &contract.TurnContext{}
	results := h.Run(context.Background(), plan.For(contract.IntentProductSearch), tc)

	if len(results) != 1 {
		t.Fatalf("envelopes = %d, want 1", len(results))
	}
	if inv.calls.Load() != 0 {
		t.Fatal("inventory ran without candidates")
	}
}

func TestRunConcurrentGroup(t *testing.T) {
	t.Parallel()

	started := make(chan string, 2)
	release := make(chan struct{})

	slow := func(name string) *fakeAdapter {
		return &fakeAdapter{name: name, execute: func(ctx context.Context, _ *contract.TurnContext) contract.Envelope {
			started <- name
			select {
			case <-release:
			case <-ctx.Done():
			}
			return contract.OK(name, nil, "")
		}}
	}
	pay := slow(contract.AdapterPayment)
	loy := slow(contract.AdapterLoyalty)

	h := New(fakeRegistry{pay.name: pay, loy.name: loy}, WithTimeout(2*time.Second))

	go func() {
		// Both must start before either finishes, proving concurrency.
		<-started
		<-started
		close(release)
	}()

	results := h.Run(context.Background(), plan.For(contract.IntentCheckout), &contract.TurnContext{})
	if len(results) != 2 || !results[0].Success || !results[1].Success {
		t.Fatalf("results = %+v", results)
	}
}

func TestRunTimeoutAndPanicBecomeFailedEnvelopes(t *testing.T) {
	t.Parallel()

	stuck := &fakeAdapter{name: contract.AdapterPayment, execute: func(ctx context.Context, _ *contract.TurnContext) contract.Envelope {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return contract.OK(contract.AdapterPayment, nil, "too late")
	}}
	angry := &fakeAdapter{name: contract.AdapterLoyalty, execute: func(context.Context, *contract.TurnContext) contract.Envelope {
		panic("loyalty exploded")
	}}

	h := New(fakeRegistry{stuck.name: stuck, angry.name: angry}, WithTimeout(20*time.Millisecond))
	results := h.Run(context.Background(), plan.For(contract.IntentCheckout), &contract.TurnContext{})

	if len(results) != 2 {
		t.Fatalf("envelopes = %d, want 2", len(results))
	}
	for _, env := range results {
		if env.Success {
			t.Fatalf("%s succeeded, want failure", env.Agent)
		}
		if env.Err == "" {
			t.Fatalf("%s has empty error detail", env.Agent)
		}
	}
}

func TestRunAbandonedAdapterKeepsPrivateContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	seen := make(chan []string, 1)

	rec := &fakeAdapter{name: contract.AdapterRecommendation, execute: func(context.Context, *contract.TurnContext) contract.Envelope {
		return contract.OK(contract.AdapterRecommendation, contract.RecommendationPayload{
			Recommendations: []retailapi.RankedProduct{{Product: retailapi.Product{ID: "P001"}}},
		}, "")
	}}
	// Outlives its deadline, then reads the context it was handed.
	straggler := &fakeAdapter{name: contract.AdapterPayment, execute: func(ctx context.Context, tc *contract.TurnContext) contract.Envelope {
		<-ctx.Done()
		<-release
		seen <- tc.ProductIDs
		return contract.OK(contract.AdapterPayment, nil, "too late")
	}}
	inv := okAdapter(contract.AdapterInventory)

	h := New(fakeRegistry{rec.name: rec, straggler.name: straggler, inv.name: inv},
		WithTimeout(10*time.Millisecond))

	p := plan.Plan{Intent: contract.IntentProductSearch, Groups: []plan.Group{
		{Adapters: []string{contract.AdapterRecommendation, contract.AdapterPayment}},
		{Adapters: []string{contract.AdapterInventory}, NeedsCandidates: true},
	}}
	tc := &contract.TurnContext{}
	results := h.Run(context.Background(), p, tc)

	if len(results) != 3 {
		t.Fatalf("envelopes = %d, want 3", len(results))
	}
	if len(tc.ProductIDs) != 1 || tc.ProductIDs[0] != "P001" {
		t.Fatalf("candidates not propagated on the shared context: %v", tc.ProductIDs)
	}

	close(release)
	if got := <-seen; len(got) != 0 {
		t.Fatalf("timed-out adapter observed later candidates: %v", got)
	}
}

func TestRunUnregisteredAdapter(t *testing.T) {
	t.Parallel()

	h := New(fakeRegistry{})
	results := h.Run(context.Background(), plan.For(contract.IntentSupport), &contract.TurnContext{})

	if len(results) != 1 || results[0].Success {
		t.Fatalf("results = %+v", results)
	}
}

func TestPropagateKeepsExplicitProductIDs(t *testing.T) {
	t.Parallel()

	tc := &contract.TurnContext{ProductIDs: []string{"P009"}}
	propagate([]contract.Envelope{
		contract.OK(contract.AdapterRecommendation, contract.RecommendationPayload{
			Recommendations: []retailapi.RankedProduct{{Product: retailapi.Product{ID: "P001"}}},
		}, ""),
	}, tc)

	if len(tc.ProductIDs) != 1 || tc.ProductIDs[0] != "P009" {
		t.Fatalf("explicit ids overwritten: %v", tc.ProductIDs)
	}
}
