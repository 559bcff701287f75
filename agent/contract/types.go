package contract

import (
	"time"

	retailx "github.com/retail-sales-agent/server/agent/retailapi"
	statex "github.com/retail-sales-agent/server/agent/state"
)

// Intent is the classified purpose of one user utterance.
type Intent string

const (
	IntentProductSearch  Intent = "product_search"
	IntentProductDetails Intent = "product_details"
	IntentAddToCart      Intent = "add_to_cart"
	IntentCheckout       Intent = "checkout"
	IntentOrderStatus    Intent = "order_status"
	IntentSupport        Intent = "support"
	IntentGeneral        Intent = "general"
)

// DefaultIntent is used whenever classification yields an intent outside the
// enumerated set; it selects the default recommendation plan.
const DefaultIntent = IntentProductSearch

// ParseIntent normalises a raw intent tag. Unknown tags map to DefaultIntent
// so a misbehaving model still gets the default dispatch plan.
func ParseIntent(v string) Intent {
	switch Intent(v) {
	case IntentProductSearch, IntentProductDetails, IntentAddToCart,
		IntentCheckout, IntentOrderStatus, IntentSupport, IntentGeneral:
		return Intent(v)
	default:
		return DefaultIntent
	}
}

// Recognized reports whether the intent belongs to the enumerated set with a
// dedicated dispatch plan.
func (i Intent) Recognized() bool {
	switch i {
	case IntentProductSearch, IntentProductDetails, IntentAddToCart,
		IntentCheckout, IntentOrderStatus, IntentSupport:
		return true
	default:
		return false
	}
}

// Adapter names double as aggregate slot keys. One adapter per slot.
const (
	AdapterRecommendation = "recommendation"
	AdapterInventory      = "inventory"
	AdapterPayment        = "payment"
	AdapterLoyalty        = "loyalty"
	AdapterFulfillment    = "fulfillment"
	AdapterSupport        = "support"
)

// Envelope is the uniform result wrapper returned by every sub-service
// adapter. It is created by the adapter and read-only to the core.
type Envelope struct {
	Agent   string `json:"agent"`
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

// OK builds a successful envelope.
func OK(agent string, payload any, message string) Envelope {
	return Envelope{Agent: agent, Success: true, Payload: payload, Message: message}
}

// Fail builds a failed envelope. Failed envelopes never contribute a slot.
func Fail(agent string, errText string, message string) Envelope {
	return Envelope{Agent: agent, Success: false, Err: errText, Message: message}
}

/* ------------------------------- Payloads ------------------------------- */

type RecommendationPayload struct {
	Recommendations []retailx.RankedProduct `json:"recommendations"`
	Count           int                     `json:"count"`
}

type InventoryPayload struct {
	Inventory    []retailx.InventoryEntry `json:"inventory"`
	NearbyStores []retailx.StoreInfo      `json:"nearby_stores,omitempty"`
}

type PaymentPayload struct {
	PaymentMethods []retailx.PaymentMethod `json:"payment_methods"`
}

type LoyaltyPayload struct {
	LoyaltyInfo      retailx.LoyaltyInfo      `json:"loyalty_info"`
	Pricing          retailx.PricingBreakdown `json:"pricing"`
	AvailableCoupons []retailx.Coupon         `json:"available_coupons,omitempty"`
}

type FulfillmentPayload struct {
	Details    *retailx.FulfillmentDetails `json:"fulfillment_details,omitempty"`
	Order      *retailx.OrderStatus        `json:"order,omitempty"`
	TrackingID string                      `json:"tracking_id,omitempty"`
}

type SupportPayload struct {
	Action          string                         `json:"action"`
	Message         string                         `json:"message"`
	OrderID         string                         `json:"order_id,omitempty"`
	FeedbackURL     string                         `json:"feedback_url,omitempty"`
	Recommendations []retailx.ComplementaryProduct `json:"recommendations,omitempty"`
	ReturnDetails   *retailx.ReturnDetails         `json:"return_details,omitempty"`
}

/* --------------------------- Aggregate result --------------------------- */

// AggregateResult is the slot-structured merge target for one turn. A slot is
// populated only when the owning adapter executed and succeeded.
type AggregateResult struct {
	Products         []retailx.RankedProduct     `json:"products,omitempty"`
	Inventory        []retailx.InventoryEntry    `json:"inventory,omitempty"`
	NearbyStores     []retailx.StoreInfo         `json:"nearby_stores,omitempty"`
	PaymentMethods   []retailx.PaymentMethod     `json:"payment_methods,omitempty"`
	Pricing          *retailx.PricingBreakdown   `json:"pricing,omitempty"`
	LoyaltyInfo      *retailx.LoyaltyInfo        `json:"loyalty_info,omitempty"`
	AvailableCoupons []retailx.Coupon            `json:"available_coupons,omitempty"`
	Fulfillment      *retailx.FulfillmentDetails `json:"fulfillment_details,omitempty"`
	Order            *retailx.OrderStatus        `json:"order,omitempty"`
	TrackingID       string                      `json:"tracking_id,omitempty"`
	Support          *SupportPayload             `json:"support,omitempty"`
}

/* ----------------------------- Turn context ----------------------------- */

// Enumerated entity keys. Anything else the classifier extracts lands in the
// Extra bucket instead of propagating untyped through the core.
const (
	EntityCategory          = "category"
	EntityBudget            = "budget"
	EntityLocation          = "location"
	EntityProductIDs        = "product_ids"
	EntityProductName       = "product_name"
	EntityCouponCode        = "coupon_code"
	EntityOrderID           = "order_id"
	EntityAction            = "action"
	EntityQuantity          = "quantity"
	EntitySize              = "size"
	EntityColor             = "color"
	EntityFulfillmentOption = "fulfillment_option"
	EntityDeliveryAddress   = "delivery_address"
)

// TurnContext carries the typed per-turn inputs handed to adapters. Adapters
// treat it as read-only; only the execution harness mutates it, between
// groups, to feed one group's output into the next.
type TurnContext struct {
	Intent     Intent
	Query      string
	CustomerID string

	Category          string
	Budget            float64
	Location          string
	ProductIDs        []string
	ProductName       string
	CouponCode        string
	OrderID           string
	Action            string
	Quantity          int
	Size              string
	Color             string
	FulfillmentOption string
	DeliveryAddress   string

	Subtotal float64
	Cart     *statex.Cart

	Extra map[string]any
}

// Clone returns an independent copy of the context. The harness hands one to
// each adapter invocation: a timed-out invocation may keep running after its
// group's barrier releases, and must not share state with later groups.
func (tc *TurnContext) Clone() *TurnContext {
	cp := *tc
	cp.ProductIDs = append([]string(nil), tc.ProductIDs...)
	if tc.Cart != nil {
		cart := *tc.Cart
		cart.Items = append([]statex.CartItem(nil), tc.Cart.Items...)
		cp.Cart = &cart
	}
	if tc.Extra != nil {
		cp.Extra = make(map[string]any, len(tc.Extra))
		for k, v := range tc.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}

// ContextFromEntities builds a TurnContext from the session's accumulated
// entity map. Unknown keys are preserved in Extra.
func ContextFromEntities(entities map[string]any) *TurnContext {
	tc := &TurnContext{Extra: make(map[string]any)}
	for k, v := range entities {
		switch k {
		case EntityCategory:
			tc.Category = asString(v)
		case EntityBudget:
			tc.Budget = asFloat(v)
		case EntityLocation:
			tc.Location = asString(v)
		case EntityProductIDs:
			tc.ProductIDs = asStringSlice(v)
		case EntityProductName:
			tc.ProductName = asString(v)
		case EntityCouponCode:
			tc.CouponCode = asString(v)
		case EntityOrderID:
			tc.OrderID = asString(v)
		case EntityAction:
			tc.Action = asString(v)
		case EntityQuantity:
			tc.Quantity = int(asFloat(v))
		case EntitySize:
			tc.Size = asString(v)
		case EntityColor:
			tc.Color = asString(v)
		case EntityFulfillmentOption:
			tc.FulfillmentOption = asString(v)
		case EntityDeliveryAddress:
			tc.DeliveryAddress = asString(v)
		default:
			tc.Extra[k] = v
		}
	}
	return tc
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

/* ------------------------------ Turn API -------------------------------- */

// Classification is the intent classifier's output. Implementations must not
// fail: on any internal error they return DefaultIntent with empty entities.
type Classification struct {
	Intent     Intent         `json:"intent"`
	Entities   map[string]any `json:"entities"`
	Confidence float64        `json:"confidence"`
}

// TurnRequest is the core's top-level input for one conversation turn.
type TurnRequest struct {
	Text       string `json:"message"`
	SessionID  string `json:"session_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
}

// TurnResponse is the consolidated reply. ProcessTurn never returns an error:
// internal faults surface as Success=false with ErrorDetail set.
type TurnResponse struct {
	Success        bool                        `json:"success"`
	SessionID      string                      `json:"session_id"`
	Message        string                      `json:"message"`
	Products       []retailx.RankedProduct     `json:"products,omitempty"`
	Pricing        *retailx.PricingBreakdown   `json:"pricing,omitempty"`
	PaymentMethods []retailx.PaymentMethod     `json:"payment_methods,omitempty"`
	LoyaltyInfo    *retailx.LoyaltyInfo        `json:"loyalty_info,omitempty"`
	Fulfillment    *retailx.FulfillmentDetails `json:"fulfillment_details,omitempty"`
	Order          *retailx.OrderStatus        `json:"order,omitempty"`
	TrackingID     string                      `json:"tracking_id,omitempty"`
	Support        *SupportPayload             `json:"support,omitempty"`
	Intent         Intent                      `json:"intent,omitempty"`
	Timestamp      time.Time                   `json:"timestamp"`
	ErrorDetail    string                      `json:"error,omitempty"`
}
