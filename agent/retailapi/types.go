// Package retailapi provides the retail backend services the sales agent
// dispatches to. All services run on seeded in-memory data so the agent is
// fully operational without external infrastructure.
package retailapi

// Product is one catalog entry.
type Product struct {
	ID          string   `json:"product_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

// RankedProduct is a catalog entry scored against a search query, optionally
// annotated in place with the buyer-facing stock summary.
type RankedProduct struct {
	Product
	Score        float64  `json:"score"`
	StockStatus  string   `json:"stock_status,omitempty"`
	StockedSizes []string `json:"stocked_sizes,omitempty"`
}

// InventoryEntry is per-product availability at online and store channels.
type InventoryEntry struct {
	ProductID   string         `json:"product_id"`
	InStock     bool           `json:"in_stock"`
	OnlineStock int            `json:"online_stock"`
	StoreStock  map[string]int `json:"store_stock,omitempty"`
	Sizes       []string       `json:"available_sizes,omitempty"`
}

// StoreInfo describes one physical store near the shopper.
type StoreInfo struct {
	StoreID  string `json:"store_id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Distance string `json:"distance"`
}

// PaymentMethod is one way the shopper can pay at checkout.
type PaymentMethod struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Surcharge   float64 `json:"surcharge,omitempty"`
	Offer       string  `json:"offer,omitempty"`
}

// PaymentResult is the outcome of a payment attempt.
type PaymentResult struct {
	Success       bool    `json:"success"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	FailureReason string  `json:"failure_reason,omitempty"`
}

// LoyaltyInfo is the shopper's loyalty standing.
type LoyaltyInfo struct {
	CustomerID       string  `json:"customer_id"`
	Name             string  `json:"name"`
	Tier             string  `json:"tier"`
	Points           int     `json:"points"`
	TierDiscountRate float64 `json:"tier_discount_rate"`
	PointsMultiplier float64 `json:"points_multiplier"`
}

// Coupon is a promotional code with its redemption constraints.
type Coupon struct {
	Code        string  `json:"code"`
	DiscountPct float64 `json:"discount_pct"`
	MinOrder    float64 `json:"min_order"`
	MaxDiscount float64 `json:"max_discount"`
	Description string  `json:"description"`
	TierOnly    string  `json:"tier_only,omitempty"`
}

// PricingBreakdown is the deterministic price calculation for one checkout.
// Tier discount applies to the subtotal, the coupon applies to the remainder,
// and points accrue on the final amount.
type PricingBreakdown struct {
	Subtotal       float64 `json:"subtotal"`
	TierDiscount   float64 `json:"tier_discount"`
	CouponApplied  string  `json:"coupon_applied,omitempty"`
	CouponDiscount float64 `json:"coupon_discount"`
	FinalAmount    float64 `json:"final_amount"`
	PointsEarned   int     `json:"points_earned"`
	Tier           string  `json:"tier"`
}

// FulfillmentDetails describes the chosen delivery or pickup arrangement.
type FulfillmentDetails struct {
	Option        string  `json:"option"`
	EstimatedDays int     `json:"estimated_days"`
	Cost          float64 `json:"cost"`
	Address       string  `json:"address,omitempty"`
	PickupStore   string  `json:"pickup_store,omitempty"`
	Instructions  string  `json:"instructions,omitempty"`
}

// OrderStatus tracks a placed order through its lifecycle.
type OrderStatus struct {
	OrderID       string   `json:"order_id"`
	Status        string   `json:"status"`
	Items         []string `json:"items"`
	Total         float64  `json:"total"`
	PlacedAt      string   `json:"placed_at"`
	EstimatedDate string   `json:"estimated_date,omitempty"`
	TrackingID    string   `json:"tracking_id,omitempty"`
	LastLocation  string   `json:"last_location,omitempty"`
}

// ComplementaryProduct is an accessory suggested alongside a purchase.
type ComplementaryProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Reason    string  `json:"reason"`
}

// ReturnDetails carries the return authorisation for a support request.
type ReturnDetails struct {
	OrderID      string `json:"order_id"`
	Eligible     bool   `json:"eligible"`
	WindowDays   int    `json:"window_days"`
	Method       string `json:"method"`
	Instructions string `json:"instructions"`
}
