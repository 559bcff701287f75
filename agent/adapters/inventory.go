package adapters

import (
	"context"
	"fmt"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

// Inventory checks stock for the turn's candidate products, falling back to
// the cart's contents when the shopper named none.
type Inventory struct {
	inventory *retailapi.Inventory
}

func NewInventory(inventory *retailapi.Inventory) *Inventory {
	return &Inventory{inventory: inventory}
}

func (a *Inventory) Name() string { return contract.AdapterInventory }

func (a *Inventory) Execute(_ context.Context, tc *contract.TurnContext) contract.Envelope {
	ids := tc.ProductIDs
	if len(ids) == 0 && tc.Cart != nil {
		ids = tc.Cart.ProductIDs()
	}
	if len(ids) == 0 {
		return contract.Fail(a.Name(), fmt.Sprintf("%v: no products to check", contract.ErrValidation), "")
	}

	payload := contract.InventoryPayload{
		Inventory: a.inventory.Check(ids),
	}
	if tc.Location != "" {
		payload.NearbyStores = a.inventory.NearbyStores(tc.Location)
	}

	return contract.OK(a.Name(), payload, fmt.Sprintf("checked stock for %d products", len(ids)))
}
