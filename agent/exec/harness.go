// Package exec runs a dispatch plan's adapter groups with barrier semantics.
package exec

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/plan"
)

// DefaultAdapterTimeout bounds one adapter invocation.
const DefaultAdapterTimeout = 5 * time.Second

type Option func(*Harness)

// WithTimeout overrides the per-adapter deadline.
func WithTimeout(d time.Duration) Option {
	return func(h *Harness) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// Harness executes plan groups in order: adapters inside a group run
// concurrently, and a group is a barrier for the next. Adapter failures,
// panics and timeouts degrade to failed envelopes; the harness itself never
// fails a turn.
type Harness struct {
	registry contract.Registry
	timeout  time.Duration
}

func New(registry contract.Registry, opts ...Option) *Harness {
	h := &Harness{
		registry: registry,
		timeout:  DefaultAdapterTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes the plan against the turn context. The returned envelopes are
// in schedule order: group by group, adapters in declaration order.
func (h *Harness) Run(ctx context.Context, p plan.Plan, tc *contract.TurnContext) []contract.Envelope {
	var results []contract.Envelope

	for _, group := range p.Groups {
		if group.NeedsCandidates && len(tc.ProductIDs) == 0 {
			log.Debug().
				Str("intent", string(p.Intent)).
				Strs("adapters", group.Adapters).
				Msg("skipping group, no candidates")
			continue
		}

		envelopes := h.runGroup(ctx, group.Adapters, tc)
		results = append(results, envelopes...)
		propagate(envelopes, tc)
	}

	return results
}

func (h *Harness) runGroup(ctx context.Context, names []string, tc *contract.TurnContext) []contract.Envelope {
	out := make([]contract.Envelope, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			out[i] = h.invoke(ctx, name, tc)
		}(i, name)
	}
	wg.Wait()

	return out
}

// invoke runs one adapter under its own deadline, converting panics and
// timeouts into failed envelopes. The adapter receives a private copy of the
// turn context: a timed-out goroutine keeps running after the barrier
// releases and must never observe the inter-group propagate writes.
func (h *Harness) invoke(ctx context.Context, name string, tc *contract.TurnContext) contract.Envelope {
	adapter, ok := h.registry.Adapter(name)
	if !ok {
		return contract.Fail(name, fmt.Sprintf("adapter %q is not registered", name), "")
	}

	invokeCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	snapshot := tc.Clone()
	result := make(chan contract.Envelope, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("adapter", name).Any("panic", r).Msg("adapter panicked")
				result <- contract.Fail(name, fmt.Sprintf("panic: %v", r), "")
			}
		}()
		result <- adapter.Execute(invokeCtx, snapshot)
	}()

	select {
	case env := <-result:
		return env
	case <-invokeCtx.Done():
		log.Warn().Str("adapter", name).Dur("timeout", h.timeout).Msg("adapter timed out")
		return contract.Fail(name, fmt.Sprintf("%v after %s", contract.ErrAdapterTimeout, h.timeout), "")
	}
}

// propagate feeds one group's output into the shared context for the next
// group. Recommendation candidates become the product ids the inventory
// adapter checks, unless the shopper already named products.
func propagate(envelopes []contract.Envelope, tc *contract.TurnContext) {
	for _, env := range envelopes {
		if !env.Success || env.Agent != contract.AdapterRecommendation {
			continue
		}
		payload, ok := env.Payload.(contract.RecommendationPayload)
		if !ok || len(tc.ProductIDs) > 0 {
			continue
		}
		ids := make([]string, 0, len(payload.Recommendations))
		for _, r := range payload.Recommendations {
			ids = append(ids, r.ID)
		}
		tc.ProductIDs = ids
	}
}
