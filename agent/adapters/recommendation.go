package adapters

import (
	"context"
	"fmt"

	"github.com/retail-sales-agent/server/agent/contract"
	"github.com/retail-sales-agent/server/agent/retailapi"
)

const maxRecommendations = 5

// Recommendation searches the catalog for products matching the shopper's
// query, category and budget.
type Recommendation struct {
	catalog *retailapi.Catalog
}

func NewRecommendation(catalog *retailapi.Catalog) *Recommendation {
	return &Recommendation{catalog: catalog}
}

func (a *Recommendation) Name() string { return contract.AdapterRecommendation }

func (a *Recommendation) Execute(_ context.Context, tc *contract.TurnContext) contract.Envelope {
	// Shopper named exact products: look them up instead of searching.
	if len(tc.ProductIDs) > 0 {
		recs := make([]retailapi.RankedProduct, 0, len(tc.ProductIDs))
		for _, id := range tc.ProductIDs {
			if p, ok := a.catalog.Get(id); ok {
				recs = append(recs, retailapi.RankedProduct{Product: p, Score: p.Rating})
			}
		}
		return contract.OK(a.Name(), contract.RecommendationPayload{
			Recommendations: recs,
			Count:           len(recs),
		}, fmt.Sprintf("found %d of %d requested products", len(recs), len(tc.ProductIDs)))
	}

	query := tc.Query
	if tc.ProductName != "" {
		query = tc.ProductName
	}

	recs := a.catalog.Search(query, tc.Category, tc.Budget, maxRecommendations)
	return contract.OK(a.Name(), contract.RecommendationPayload{
		Recommendations: recs,
		Count:           len(recs),
	}, fmt.Sprintf("found %d matching products", len(recs)))
}
