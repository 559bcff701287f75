// Package adapters wraps the retail backend services behind the uniform
// adapter contract the dispatcher executes.
package adapters

import (
	"sort"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

// Registry resolves adapters by name.
type Registry struct {
	adapters map[string]contract.Adapter
}

// New registers the given adapters. Later duplicates win, which lets tests
// override a single adapter.
func New(adapters ...contract.Adapter) *Registry {
	r := &Registry{adapters: make(map[string]contract.Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

func (r *Registry) Adapter(name string) (contract.Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Names lists the registered adapter names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Default wires the full adapter set over the given backend services.
func Default(catalog *retailapi.Catalog, inventory *retailapi.Inventory, payments *retailapi.Payments, loyalty *retailapi.Loyalty, fulfillment *retailapi.Fulfillment) *Registry {
	return New(
		NewRecommendation(catalog),
		NewInventory(inventory),
		NewPayment(payments),
		NewLoyalty(loyalty),
		NewFulfillment(fulfillment),
		NewSupport(catalog, fulfillment),
	)
}
