// Package plan maps a classified intent to the adapters that serve it.
package plan

import "github.com/retail-sales-agent/server/agent/contract"

// Group is one barrier-delimited execution step. All adapters in a group run
// concurrently; the next group starts only after the whole group settles.
type Group struct {
	Adapters []string
	// NeedsCandidates marks groups that only make sense when an earlier group
	// produced product candidates. Such groups are skipped otherwise.
	NeedsCandidates bool
}

// Plan is the ordered adapter schedule for one turn.
type Plan struct {
	Intent contract.Intent
	Groups []Group
}

// AdapterNames lists every adapter the plan can invoke, in schedule order.
func (p Plan) AdapterNames() []string {
	var out []string
	for _, g := range p.Groups {
		out = append(out, g.Adapters...)
	}
	return out
}

// For selects the dispatch plan for an intent. Planning is total: every
// intent, recognized or not, yields a non-empty plan.
func For(intent contract.Intent) Plan {
	switch intent {
	case contract.IntentProductSearch, contract.IntentProductDetails:
		return Plan{Intent: intent, Groups: []Group{
			{Adapters: []string{contract.AdapterRecommendation}},
			{Adapters: []string{contract.AdapterInventory}, NeedsCandidates: true},
		}}
	case contract.IntentAddToCart:
		return Plan{Intent: intent, Groups: []Group{
			{Adapters: []string{contract.AdapterInventory}},
		}}
	case contract.IntentCheckout:
		return Plan{Intent: intent, Groups: []Group{
			{Adapters: []string{contract.AdapterPayment, contract.AdapterLoyalty}},
		}}
	case contract.IntentOrderStatus:
		return Plan{Intent: intent, Groups: []Group{
			{Adapters: []string{contract.AdapterFulfillment}},
		}}
	case contract.IntentSupport:
		return Plan{Intent: intent, Groups: []Group{
			{Adapters: []string{contract.AdapterSupport}},
		}}
	default:
		return Plan{Intent: intent, Groups: []Group{
			{Adapters: []string{contract.AdapterRecommendation}},
		}}
	}
}
