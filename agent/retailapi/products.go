package retailapi

import (
	"sort"
	"strings"
)

// Catalog is the product search and lookup service.
type Catalog struct {
	products []Product
	related  map[string][]ComplementaryProduct
}

// NewCatalog seeds the catalog with the demo assortment.
func NewCatalog() *Catalog {
	return &Catalog{
		products: seedProducts(),
		related:  seedComplements(),
	}
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Search scores the assortment against the query and filters, returning up to
// limit products ordered by score then rating. A zero budget means no cap.
func (c *Catalog) Search(query, category string, budget float64, limit int) []RankedProduct {
	if limit <= 0 {
		limit = 5
	}

	terms := tokenize(query)
	out := make([]RankedProduct, 0, limit)
	for _, p := range c.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if budget > 0 && p.Price > budget {
			continue
		}
		out = append(out, RankedProduct{Product: p, Score: score(p, terms)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Rating > out[j].Rating
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Complementary suggests accessories for the given product.
func (c *Catalog) Complementary(productID string) []ComplementaryProduct {
	return c.related[productID]
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 3 {
			out = append(out, f)
		}
	}
	return out
}

func score(p Product, terms []string) float64 {
	if len(terms) == 0 {
		return p.Rating
	}

	haystack := strings.ToLower(p.Name + " " + p.Category + " " + p.Brand + " " +
		p.Description + " " + strings.Join(p.Tags, " "))

	var hits float64
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			hits++
		}
	}
	return hits*10 + p.Rating
}

func seedProducts() []Product {
	return []Product{
		{
			ID: "P001", Name: "AeroStride Running Shoes", Category: "shoes",
			Brand: "AeroStride", Price: 3999, Rating: 4.5,
			Description: "Lightweight cushioned running shoes for daily training",
			Tags:        []string{"running", "sports", "men"},
			Sizes:       []string{"7", "8", "9", "10", "11"},
			Colors:      []string{"black", "blue", "white"},
		},
		{
			ID: "P002", Name: "TrailMax Hiking Shoes", Category: "shoes",
			Brand: "TrailMax", Price: 5499, Rating: 4.3,
			Description: "Rugged waterproof hiking shoes with ankle support",
			Tags:        []string{"hiking", "outdoor", "waterproof"},
			Sizes:       []string{"8", "9", "10", "11"},
			Colors:      []string{"brown", "grey"},
		},
		{
			ID: "P003", Name: "CityWalk Casual Sneakers", Category: "shoes",
			Brand: "CityWalk", Price: 2499, Rating: 4.1,
			Description: "Everyday canvas sneakers with memory foam insole",
			Tags:        []string{"casual", "sneakers", "unisex"},
			Sizes:       []string{"6", "7", "8", "9", "10"},
			Colors:      []string{"white", "navy", "olive"},
		},
		{
			ID: "P004", Name: "StormShield Rain Jacket", Category: "jackets",
			Brand: "StormShield", Price: 4299, Rating: 4.4,
			Description: "Packable rain jacket with taped seams",
			Tags:        []string{"rain", "outdoor", "monsoon"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"yellow", "black"},
		},
		{
			ID: "P005", Name: "AlpinePeak Down Jacket", Category: "jackets",
			Brand: "AlpinePeak", Price: 8999, Rating: 4.7,
			Description: "700-fill down jacket for sub-zero conditions",
			Tags:        []string{"winter", "warm", "premium"},
			Sizes:       []string{"M", "L", "XL"},
			Colors:      []string{"red", "charcoal"},
		},
		{
			ID: "P006", Name: "CottonCrew Basic T-Shirt", Category: "tshirts",
			Brand: "CottonCrew", Price: 799, Rating: 4.0,
			Description: "100% combed cotton crew-neck t-shirt",
			Tags:        []string{"casual", "cotton", "basics"},
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []string{"white", "black", "maroon", "teal"},
		},
		{
			ID: "P007", Name: "FlexFit Sports T-Shirt", Category: "tshirts",
			Brand: "FlexFit", Price: 1199, Rating: 4.2,
			Description: "Moisture-wicking training t-shirt",
			Tags:        []string{"sports", "gym", "running"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"neon green", "black", "grey"},
		},
		{
			ID: "P008", Name: "UrbanEdge Slim Jeans", Category: "jeans",
			Brand: "UrbanEdge", Price: 2899, Rating: 4.3,
			Description: "Stretch denim slim-fit jeans",
			Tags:        []string{"denim", "casual", "slim"},
			Sizes:       []string{"30", "32", "34", "36"},
			Colors:      []string{"indigo", "black"},
		},
		{
			ID: "P009", Name: "ChronoSport Smartwatch", Category: "watches",
			Brand: "ChronoSport", Price: 12999, Rating: 4.6,
			Description: "GPS smartwatch with heart-rate and sleep tracking",
			Tags:        []string{"fitness", "smart", "premium", "running"},
			Colors:      []string{"black", "silver"},
		},
		{
			ID: "P010", Name: "NomadPack 30L Backpack", Category: "backpacks",
			Brand: "NomadPack", Price: 3499, Rating: 4.4,
			Description: "Water-resistant 30L daypack with laptop sleeve",
			Tags:        []string{"travel", "laptop", "outdoor"},
			Colors:      []string{"grey", "forest green"},
		},
		{
			ID: "P011", Name: "SwiftPace Marathon Shoes", Category: "shoes",
			Brand: "SwiftPace", Price: 7999, Rating: 4.8,
			Description: "Carbon-plated racing shoes for marathon day",
			Tags:        []string{"running", "racing", "premium", "marathon"},
			Sizes:       []string{"8", "9", "10"},
			Colors:      []string{"volt", "white"},
		},
		{
			ID: "P012", Name: "CozyKnit Wool Sweater", Category: "sweaters",
			Brand: "CozyKnit", Price: 2599, Rating: 4.2,
			Description: "Merino wool crew-neck sweater",
			Tags:        []string{"winter", "wool", "warm"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"oatmeal", "navy"},
		},
	}
}

func seedComplements() map[string][]ComplementaryProduct {
	return map[string][]ComplementaryProduct{
		"P001": {
			{ProductID: "P007", Name: "FlexFit Sports T-Shirt", Price: 1199, Reason: "pairs with running shoes"},
			{ProductID: "ACC01", Name: "CushionPro Running Socks (3-pack)", Price: 499, Reason: "blister protection on long runs"},
		},
		"P009": {
			{ProductID: "ACC02", Name: "ChronoSport Spare Strap", Price: 899, Reason: "swap straps between gym and office"},
		},
		"P010": {
			{ProductID: "ACC03", Name: "NomadPack Rain Cover", Price: 399, Reason: "keeps the pack dry in monsoon"},
		},
	}
}
