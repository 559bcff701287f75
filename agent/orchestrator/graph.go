package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	"github.com/retail-sales-agent/server/agent/aggregate"
	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/plan"
	"github.com/retail-sales-agent/server/agent/state"
)

// turnState threads one turn through the pipeline nodes.
type turnState struct {
	req     contract.TurnRequest
	session *state.Session

	classification contract.Classification
	tc             *contract.TurnContext
	plan           plan.Plan
	envelopes      []contract.Envelope
	result         *contract.AggregateResult
	reply          string
}

// entity keys that describe a single turn, not the shopper, and must not
// leak into later turns through the session.
var turnScopedEntities = map[string]bool{
	contract.EntityAction:   true,
	contract.EntityQuantity: true,
}

// compilePipeline builds the turn pipeline: classify, dispatch, aggregate,
// apply side effects, compose the reply. Nodes pass the shared turn state.
func (s *Service) compilePipeline(ctx context.Context) (compose.Runnable[*turnState, *turnState], error) {
	g := compose.NewGraph[*turnState, *turnState]()

	nodes := []struct {
		name string
		fn   func(ctx context.Context, ts *turnState) (*turnState, error)
	}{
		{"classify", s.classifyNode},
		{"dispatch", s.dispatchNode},
		{"aggregate", s.aggregateNode},
		{"apply", s.applyNode},
		{"compose", s.composeNode},
	}

	for _, n := range nodes {
		if err := g.AddLambdaNode(n.name, compose.InvokableLambda(n.fn)); err != nil {
			return nil, fmt.Errorf("add %s node: %w", n.name, err)
		}
	}

	prev := compose.START
	for _, n := range nodes {
		if err := g.AddEdge(prev, n.name); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", prev, n.name, err)
		}
		prev = n.name
	}
	if err := g.AddEdge(prev, compose.END); err != nil {
		return nil, err
	}

	return g.Compile(ctx)
}

// classifyHistoryTurns bounds how much conversation the classifier sees.
const classifyHistoryTurns = 6

// classifyNode resolves the intent, folds extracted entities into the
// session and builds the typed turn context.
func (s *Service) classifyNode(ctx context.Context, ts *turnState) (*turnState, error) {
	ts.classification = s.classifier.Classify(ctx, ts.req.Text, ts.session.RecentHistory(classifyHistoryTurns))

	persistent := make(map[string]any, len(ts.classification.Entities))
	for k, v := range ts.classification.Entities {
		if !turnScopedEntities[k] {
			persistent[k] = v
		}
	}
	ts.session.MergeEntities(persistent)

	tc := contract.ContextFromEntities(ts.session.Entities)
	tc.Intent = ts.classification.Intent
	tc.Query = ts.req.Text
	tc.CustomerID = ts.session.CustomerID
	tc.Cart = &ts.session.Cart
	tc.Subtotal = ts.session.Cart.Subtotal

	// Turn-scoped entities come from this classification only.
	if v, ok := ts.classification.Entities[contract.EntityAction].(string); ok {
		tc.Action = v
	}
	if v, ok := ts.classification.Entities[contract.EntityQuantity]; ok {
		switch n := v.(type) {
		case float64:
			tc.Quantity = int(n)
		case int:
			tc.Quantity = n
		}
	}

	ts.tc = tc

	log.Info().
		Str("session_id", ts.session.SessionID).
		Str("intent", string(tc.Intent)).
		Float64("confidence", ts.classification.Confidence).
		Msg("turn classified")
	return ts, nil
}

func (s *Service) dispatchNode(ctx context.Context, ts *turnState) (*turnState, error) {
	ts.plan = plan.For(ts.tc.Intent)
	ts.envelopes = s.harness.Run(ctx, ts.plan, ts.tc)
	return ts, nil
}

func (s *Service) aggregateNode(_ context.Context, ts *turnState) (*turnState, error) {
	ts.result = aggregate.Merge(ts.envelopes)
	return ts, nil
}

// applyNode performs the turn's session side effects: cart mutations for
// add_to_cart and order placement at checkout confirmation.
func (s *Service) applyNode(_ context.Context, ts *turnState) (*turnState, error) {
	switch ts.tc.Intent {
	case contract.IntentAddToCart:
		ts.reply = s.applyCartOps(ts)
	case contract.IntentCheckout:
		if wantsOrderPlacement(ts.tc) {
			ts.reply = s.placeOrder(ts)
		}
	}
	return ts, nil
}

// composeNode renders the reply unless a side effect already produced one.
func (s *Service) composeNode(ctx context.Context, ts *turnState) (*turnState, error) {
	if ts.reply == "" {
		ts.reply = s.composer.Compose(ctx, ts.tc.Intent, ts.req.Text, ts.result)
	}
	return ts, nil
}
