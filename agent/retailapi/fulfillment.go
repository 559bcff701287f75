package retailapi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Fulfillment options.
const (
	FulfillStandard = "standard"
	FulfillExpress  = "express"
	FulfillPickup   = "store_pickup"
)

// Fulfillment quotes delivery options and tracks orders.
type Fulfillment struct {
	mu     sync.Mutex
	orders map[string]OrderStatus
	now    func() time.Time
}

func NewFulfillment() *Fulfillment {
	return &Fulfillment{
		orders: seedOrders(),
		now:    time.Now,
	}
}

// Quote returns the fulfillment arrangement for the chosen option. Unknown
// options quote standard delivery.
func (f *Fulfillment) Quote(option, address string) FulfillmentDetails {
	switch strings.ToLower(strings.TrimSpace(option)) {
	case FulfillExpress:
		return FulfillmentDetails{
			Option:        FulfillExpress,
			EstimatedDays: 1,
			Cost:          149,
			Address:       address,
			Instructions:  "Delivered by 9 PM tomorrow",
		}
	case FulfillPickup:
		return FulfillmentDetails{
			Option:        FulfillPickup,
			EstimatedDays: 0,
			Cost:          0,
			PickupStore:   "ST01",
			Instructions:  "Ready for pickup in 2 hours, carry order id",
		}
	default:
		return FulfillmentDetails{
			Option:        FulfillStandard,
			EstimatedDays: 4,
			Cost:          0,
			Address:       address,
			Instructions:  "Free delivery in 3-5 business days",
		}
	}
}

// Place registers a new order and returns its status with a tracking id.
func (f *Fulfillment) Place(items []string, total float64, details FulfillmentDetails) OrderStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	order := OrderStatus{
		OrderID:       fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8])),
		Status:        "confirmed",
		Items:         items,
		Total:         total,
		PlacedAt:      f.now().UTC().Format(time.RFC3339),
		EstimatedDate: f.now().AddDate(0, 0, details.EstimatedDays).Format("2006-01-02"),
		TrackingID:    fmt.Sprintf("TRK-%s", strings.ToUpper(uuid.NewString()[:10])),
	}
	f.orders[order.OrderID] = order
	return order
}

// Track returns the status of an order.
func (f *Fulfillment) Track(orderID string) (OrderStatus, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[strings.ToUpper(strings.TrimSpace(orderID))]
	return order, ok
}

// ReturnPolicy evaluates return eligibility for an order. Delivered orders
// within the window qualify for doorstep pickup.
func (f *Fulfillment) ReturnPolicy(orderID string) ReturnDetails {
	order, ok := f.Track(orderID)
	if !ok {
		return ReturnDetails{OrderID: orderID, Eligible: false, Instructions: "order not found"}
	}

	eligible := order.Status == "delivered" || order.Status == "confirmed" || order.Status == "shipped"
	rd := ReturnDetails{
		OrderID:    order.OrderID,
		Eligible:   eligible,
		WindowDays: 10,
		Method:     "doorstep_pickup",
	}
	if eligible {
		rd.Instructions = "Keep tags attached, pickup scheduled within 48 hours"
	} else {
		rd.Instructions = "This order is not eligible for return"
	}
	return rd
}

func seedOrders() map[string]OrderStatus {
	return map[string]OrderStatus{
		"ORD-1001": {
			OrderID: "ORD-1001", Status: "shipped",
			Items: []string{"P001", "P007"}, Total: 4678.20,
			PlacedAt: "2026-08-25T10:15:00Z", EstimatedDate: "2026-08-31",
			TrackingID: "TRK-88A2C4E1F0", LastLocation: "Bengaluru sorting facility",
		},
		"ORD-1002": {
			OrderID: "ORD-1002", Status: "delivered",
			Items: []string{"P006"}, Total: 719.10,
			PlacedAt: "2026-08-18T14:02:00Z", EstimatedDate: "2026-08-22",
			TrackingID: "TRK-13D9B07A52", LastLocation: "Delivered to doorstep",
		},
		"ORD-1003": {
			OrderID: "ORD-1003", Status: "processing",
			Items: []string{"P009"}, Total: 11049.15,
			PlacedAt: "2026-08-29T08:40:00Z", EstimatedDate: "2026-09-03",
		},
	}
}
